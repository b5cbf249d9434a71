package model

import (
	"errors"
	"reflect"
	"testing"
)

func sampleTasks() []Task {
	return []Task{
		{ID: 4, Text: "d", Date: "2024-01-04", Completed: true},
		{ID: 3, Text: "c", Date: "2024-01-03"},
		{ID: 2, Text: "b", Date: "2024-01-02", Completed: true},
		{ID: 1, Text: "a", Date: "2024-01-01"},
	}
}

func TestApplyAllIsIdentity(t *testing.T) {
	tasks := sampleTasks()
	got := Apply(tasks, FilterAll)
	if !reflect.DeepEqual(got, tasks) {
		t.Fatalf("all filter changed list: %#v", got)
	}
}

func TestApplyCompletedAndUncompleted(t *testing.T) {
	tasks := sampleTasks()

	done := Apply(tasks, FilterCompleted)
	if len(done) != 2 || done[0].ID != 4 || done[1].ID != 2 {
		t.Fatalf("unexpected completed selection: %#v", done)
	}
	for _, task := range done {
		if !task.Completed {
			t.Fatalf("completed filter leaked open task: %#v", task)
		}
	}

	open := Apply(tasks, FilterUncompleted)
	if len(open) != 2 || open[0].ID != 3 || open[1].ID != 1 {
		t.Fatalf("unexpected uncompleted selection: %#v", open)
	}
	for _, task := range open {
		if task.Completed {
			t.Fatalf("uncompleted filter leaked done task: %#v", task)
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	tasks := sampleTasks()
	before := sampleTasks()
	_ = Apply(tasks, FilterCompleted)
	if !reflect.DeepEqual(tasks, before) {
		t.Fatalf("input mutated: %#v", tasks)
	}
}

func TestParseFilter(t *testing.T) {
	cases := map[string]Filter{
		"all":         FilterAll,
		" Completed ": FilterCompleted,
		"UNCOMPLETED": FilterUncompleted,
	}
	for in, want := range cases {
		got, err := ParseFilter(in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseFilter("done"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got: %v", err)
	}
}

func TestFilterCycle(t *testing.T) {
	f := FilterAll
	seen := []Filter{f}
	for i := 0; i < 3; i++ {
		f = f.Next()
		seen = append(seen, f)
	}
	want := []Filter{FilterAll, FilterCompleted, FilterUncompleted, FilterAll}
	if !reflect.DeepEqual(seen, want) {
		t.Fatalf("unexpected cycle: %v", seen)
	}
	if FilterAll.Prev() != FilterUncompleted || FilterCompleted.Prev() != FilterAll {
		t.Fatal("unexpected reverse cycle")
	}
}
