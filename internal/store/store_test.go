package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// countingKV records writes so tests can assert write-through behavior.
type countingKV struct {
	storage.KV
	sets   int
	setErr error
}

func (c *countingKV) Set(ctx context.Context, key string, value []byte) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	return c.KV.Set(ctx, key, value)
}

func newKV(t *testing.T) *countingKV {
	t.Helper()
	kv, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "store-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return &countingKV{KV: kv}
}

func newStore(t *testing.T) (*Store, *countingKV, *fakeClock) {
	t.Helper()
	kv := newKV(t)
	clock := &fakeClock{t: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	s := New(kv, WithClock(clock.now))
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s, kv, clock
}

func TestAddPrependsOpenTask(t *testing.T) {
	s, kv, clock := newStore(t)

	task, err := s.Add(context.Background(), "Buy milk", "2024-01-01")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	want := model.Task{ID: clock.t.UnixMilli(), Text: "Buy milk", Date: "2024-01-01"}
	if task != want {
		t.Fatalf("unexpected task: %#v", task)
	}
	if got := s.Tasks(); !reflect.DeepEqual(got, []model.Task{want}) {
		t.Fatalf("unexpected list: %#v", got)
	}
	if kv.sets != 1 {
		t.Fatalf("expected one write, got %d", kv.sets)
	}

	clock.advance(time.Second)
	second, err := s.Add(context.Background(), "Walk dog", "2024-01-02")
	if err != nil {
		t.Fatalf("add second: %v", err)
	}
	tasks := s.Tasks()
	if len(tasks) != 2 || tasks[0].ID != second.ID || tasks[0].Completed {
		t.Fatalf("expected newest first and open, got %#v", tasks)
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	s, kv, _ := newStore(t)
	if _, err := s.Add(context.Background(), "keep", "2024-01-01"); err != nil {
		t.Fatalf("seed add: %v", err)
	}
	before := s.Tasks()
	writes := kv.sets

	cases := []struct{ text, date string }{
		{"", "2024-01-01"},
		{"   ", "2024-01-01"},
		{"valid", ""},
	}
	for _, tc := range cases {
		_, err := s.Add(context.Background(), tc.text, tc.date)
		var ve *model.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("add(%q,%q): expected ValidationError, got %v", tc.text, tc.date, err)
		}
	}
	if !reflect.DeepEqual(s.Tasks(), before) {
		t.Fatalf("list changed after invalid adds: %#v", s.Tasks())
	}
	if kv.sets != writes {
		t.Fatalf("invalid adds wrote to storage")
	}
}

func TestAddSameMillisecondKeepsIDsUnique(t *testing.T) {
	s, _, _ := newStore(t)
	a, err := s.Add(context.Background(), "a", "2024-01-01")
	if err != nil {
		t.Fatalf("add a: %v", err)
	}
	b, err := s.Add(context.Background(), "b", "2024-01-01")
	if err != nil {
		t.Fatalf("add b: %v", err)
	}
	if b.ID <= a.ID {
		t.Fatalf("expected increasing ids, got %d then %d", a.ID, b.ID)
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	s, kv, _ := newStore(t)
	task, _ := s.Add(context.Background(), "a", "2024-01-01")

	found, err := s.ToggleCompleted(context.Background(), task.ID)
	if err != nil || !found {
		t.Fatalf("toggle: found=%v err=%v", found, err)
	}
	if got, _ := s.Get(task.ID); !got.Completed {
		t.Fatal("expected completed after first toggle")
	}
	if _, err := s.ToggleCompleted(context.Background(), task.ID); err != nil {
		t.Fatalf("toggle again: %v", err)
	}
	if got, _ := s.Get(task.ID); got.Completed {
		t.Fatal("expected open after second toggle")
	}
	if kv.sets != 3 {
		t.Fatalf("expected a write per mutation, got %d", kv.sets)
	}
}

func TestRemoveAndMissingIDs(t *testing.T) {
	s, kv, clock := newStore(t)
	a, _ := s.Add(context.Background(), "A", "2024-01-01")
	clock.advance(time.Millisecond)
	b, _ := s.Add(context.Background(), "B", "2024-01-02")

	if got := s.Tasks(); got[0].ID != b.ID || got[1].ID != a.ID {
		t.Fatalf("expected [B, A], got %#v", got)
	}

	writes := kv.sets
	before := s.Tasks()
	found, err := s.Remove(context.Background(), 42)
	if err != nil || found {
		t.Fatalf("remove missing: found=%v err=%v", found, err)
	}
	found, err = s.ToggleCompleted(context.Background(), 42)
	if err != nil || found {
		t.Fatalf("toggle missing: found=%v err=%v", found, err)
	}
	if !reflect.DeepEqual(s.Tasks(), before) || kv.sets != writes {
		t.Fatal("missing id mutated the list or wrote to storage")
	}

	found, err = s.Remove(context.Background(), b.ID)
	if err != nil || !found {
		t.Fatalf("remove B: found=%v err=%v", found, err)
	}
	if got := s.Tasks(); len(got) != 1 || got[0].ID != a.ID {
		t.Fatalf("expected [A], got %#v", got)
	}
}

func TestTasksReturnsCopy(t *testing.T) {
	s, _, _ := newStore(t)
	task, _ := s.Add(context.Background(), "a", "2024-01-01")
	out := s.Tasks()
	out[0].Completed = true
	if got, _ := s.Get(task.ID); got.Completed {
		t.Fatal("mutating Tasks() result leaked into the store")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	kv := newKV(t)
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := New(kv, WithClock(clock.now), WithKey("roundtrip"))
	for _, text := range []string{"one", "two", "three"} {
		clock.advance(time.Minute)
		if _, err := s.Add(context.Background(), text, "2024-02-01"); err != nil {
			t.Fatalf("add %s: %v", text, err)
		}
	}
	if _, err := s.ToggleCompleted(context.Background(), s.Tasks()[1].ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	reloaded := New(kv, WithKey("roundtrip"))
	if err := reloaded.Load(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(reloaded.Tasks(), s.Tasks()) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", reloaded.Tasks(), s.Tasks())
	}
}

func TestLoadRecoversFromCorruptContent(t *testing.T) {
	kv := newKV(t)
	for _, raw := range []string{"{not json", `{"id":1}`, `"text"`} {
		if err := kv.KV.Set(context.Background(), DefaultKey, []byte(raw)); err != nil {
			t.Fatalf("seed: %v", err)
		}
		s := New(kv)
		if err := s.Load(context.Background()); err != nil {
			t.Fatalf("load %q: expected silent recovery, got %v", raw, err)
		}
		if s.Len() != 0 {
			t.Fatalf("load %q: expected empty list, got %d", raw, s.Len())
		}
	}
}

func TestLoadDropsInvalidRecords(t *testing.T) {
	kv := newKV(t)
	raw := `[{"id":3,"text":"keep","date":"2024-01-03","completed":false},` +
		`{"id":0,"text":"zero id","date":"2024-01-02","completed":false},` +
		`{"id":2,"text":"   ","date":"2024-01-02","completed":true},` +
		`{"id":1,"text":"also keep","date":"2024-01-01","completed":true}]`
	if err := kv.KV.Set(context.Background(), DefaultKey, []byte(raw)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s := New(kv)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	tasks := s.Tasks()
	if len(tasks) != 2 || tasks[0].ID != 3 || tasks[1].ID != 1 {
		t.Fatalf("expected only valid records in order, got %#v", tasks)
	}
	if kv.sets != 0 {
		t.Fatal("load must not write")
	}
}

func TestClear(t *testing.T) {
	s, kv, _ := newStore(t)
	if n, err := s.Clear(context.Background()); err != nil || n != 0 {
		t.Fatalf("clear of absent key: n=%d err=%v", n, err)
	}
	for _, text := range []string{"a", "b"} {
		if _, err := s.Add(context.Background(), text, "2024-01-01"); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	n, err := s.Clear(context.Background())
	if err != nil || n != 2 || s.Len() != 0 {
		t.Fatalf("clear: n=%d len=%d err=%v", n, s.Len(), err)
	}
	if _, err := kv.Get(context.Background(), s.Key()); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected key removed, got %v", err)
	}

	reloaded := New(kv)
	if err := reloaded.Load(context.Background()); err != nil || reloaded.Len() != 0 {
		t.Fatalf("reload after clear: len=%d err=%v", reloaded.Len(), err)
	}
}

func TestLoadAbsentKeyAndNull(t *testing.T) {
	kv := newKV(t)
	s := New(kv)
	if err := s.Load(context.Background()); err != nil || s.Len() != 0 {
		t.Fatalf("absent key: len=%d err=%v", s.Len(), err)
	}
	if err := kv.KV.Set(context.Background(), DefaultKey, []byte("null")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := s.Load(context.Background()); err != nil || s.Len() != 0 {
		t.Fatalf("null value: len=%d err=%v", s.Len(), err)
	}
}

func TestSaveFailureKeepsMemoryAndReturnsError(t *testing.T) {
	s, kv, _ := newStore(t)
	kv.setErr = errors.New("disk full")

	task, err := s.Add(context.Background(), "a", "2024-01-01")
	if err == nil {
		t.Fatal("expected save error")
	}
	if !errors.Is(err, kv.setErr) {
		t.Fatalf("expected wrapped disk error, got %v", err)
	}
	if _, ok := s.Get(task.ID); !ok {
		t.Fatal("expected task to remain in memory")
	}
}

func TestCounts(t *testing.T) {
	s, _, _ := newStore(t)
	a, _ := s.Add(context.Background(), "a", "2024-01-01")
	_, _ = s.Add(context.Background(), "b", "2024-01-01")
	_, _ = s.ToggleCompleted(context.Background(), a.ID)
	total, done := s.Counts()
	if total != 2 || done != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", total, done)
	}
}
