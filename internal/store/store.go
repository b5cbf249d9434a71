// Package store owns the ordered task list and writes it through to a
// key-value backend after every mutation.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
	"go.uber.org/zap"
)

const DefaultKey = "todos"

// ErrParse marks persisted content that could not be decoded. Load recovers
// from it; it is exported so callers of Decode can test for it.
var ErrParse = errors.New("store: persisted tasks unreadable")

type Store struct {
	kv     storage.KV
	key    string
	now    func() time.Time
	logger *zap.Logger
	tasks  []model.Task
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		key:    DefaultKey,
		now:    time.Now,
		logger: zap.NewNop(),
		tasks:  []model.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key is the storage key holding the list.
func (s *Store) Key() string { return s.key }

// Load replaces the in-memory list with the persisted one. Absent or
// unreadable content yields an empty list; only backend I/O errors are
// returned.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.tasks = []model.Task{}
			return nil
		}
		return fmt.Errorf("load %s: %w", s.key, err)
	}
	tasks, err := Decode(raw)
	if err != nil {
		s.logger.Warn("discarding unreadable task list", zap.String("key", s.key), zap.Error(err))
		s.tasks = []model.Task{}
		return nil
	}
	s.tasks = validOnly(tasks, s.logger)
	s.logger.Debug("tasks loaded", zap.String("key", s.key), zap.Int("count", len(s.tasks)))
	return nil
}

// validOnly drops records that could never have been added, such as a zero
// id or blank text left behind by a hand-edited value.
func validOnly(tasks []model.Task, logger *zap.Logger) []model.Task {
	out := tasks[:0]
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			logger.Warn("dropping invalid task record", zap.Int64("id", t.ID), zap.Error(err))
			continue
		}
		out = append(out, t)
	}
	return out
}

// Clear removes the persisted list entirely and empties memory. It reports how
// many tasks were dropped. Clearing an absent key is not an error.
func (s *Store) Clear(ctx context.Context) (int, error) {
	if err := s.kv.Delete(ctx, s.key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.logger.Error("clear tasks failed", zap.String("key", s.key), zap.Error(err))
		return 0, fmt.Errorf("clear %s: %w", s.key, err)
	}
	n := len(s.tasks)
	s.tasks = []model.Task{}
	s.logger.Info("tasks cleared", zap.String("key", s.key), zap.Int("count", n))
	return n, nil
}

// Save writes the full list, replacing whatever the key held before.
func (s *Store) Save(ctx context.Context) error {
	payload, err := Encode(s.tasks)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, payload); err != nil {
		s.logger.Error("save tasks failed", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

// Add prepends a new open task. Invalid input returns *model.ValidationError
// and leaves the list untouched.
func (s *Store) Add(ctx context.Context, text, date string) (model.Task, error) {
	if err := model.ValidateInput(text, date); err != nil {
		return model.Task{}, err
	}
	task := model.Task{
		ID:   s.nextID(),
		Text: text,
		Date: date,
	}
	s.tasks = append([]model.Task{task}, s.tasks...)
	s.logger.Info("task added", zap.Int64("id", task.ID), zap.String("date", task.Date))
	return task, s.Save(ctx)
}

// Remove deletes the task with id. A missing id is a no-op and reports false.
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		s.logger.Debug("remove ignored, unknown id", zap.Int64("id", id))
		return false, nil
	}
	s.tasks = append(s.tasks[:idx:idx], s.tasks[idx+1:]...)
	s.logger.Info("task removed", zap.Int64("id", id))
	return true, s.Save(ctx)
}

// ToggleCompleted flips the completed flag of id. A missing id is a no-op and
// reports false.
func (s *Store) ToggleCompleted(ctx context.Context, id int64) (bool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		s.logger.Debug("toggle ignored, unknown id", zap.Int64("id", id))
		return false, nil
	}
	s.tasks[idx].Completed = !s.tasks[idx].Completed
	s.logger.Info("task toggled", zap.Int64("id", id), zap.Bool("completed", s.tasks[idx].Completed))
	return true, s.Save(ctx)
}

// Tasks returns a copy of the list, newest first.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Get(id int64) (model.Task, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, false
	}
	return s.tasks[idx], true
}

func (s *Store) Len() int { return len(s.tasks) }

func (s *Store) Counts() (total, completed int) {
	for _, t := range s.tasks {
		if t.Completed {
			completed++
		}
	}
	return len(s.tasks), completed
}

func (s *Store) indexOf(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// nextID derives the id from the creation time in milliseconds, bumped past
// the largest existing id so ids stay unique when the clock repeats.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	var highest int64
	for _, t := range s.tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	if id <= highest {
		id = highest + 1
	}
	return id
}
