package model

import (
	"fmt"
	"strings"
)

type Filter string

const (
	FilterAll         Filter = "all"
	FilterCompleted   Filter = "completed"
	FilterUncompleted Filter = "uncompleted"
)

// Filters lists the selectable modes in display order.
var Filters = []Filter{FilterAll, FilterCompleted, FilterUncompleted}

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterCompleted, FilterUncompleted:
		return true
	default:
		return false
	}
}

func ParseFilter(raw string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(raw)))
	if !f.IsValid() {
		return FilterAll, fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
	return f, nil
}

// Next cycles all -> completed -> uncompleted -> all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterCompleted
	case FilterCompleted:
		return FilterUncompleted
	default:
		return FilterAll
	}
}

func (f Filter) Prev() Filter {
	switch f {
	case FilterAll:
		return FilterUncompleted
	case FilterUncompleted:
		return FilterCompleted
	default:
		return FilterAll
	}
}

func (f Filter) Match(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterUncompleted:
		return !t.Completed
	default:
		return true
	}
}

// Apply returns the tasks matching f in their original order. The input slice
// is never modified.
func Apply(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
