// Package pipelines provides a small dependency-ordered task runner used
// by the CLI's batch mode, which fans input files out across a bounded
// pool of workers and runs one Flow per file so the per-document stages
// (canonicalize, format, write) read as a DAG rather than nested
// goroutine plumbing.
package pipelines

import (
	"context"
	"fmt"
)

type taskFn func() error

type task struct {
	name string
	fn   taskFn
	deps []string
}

// Flow is a named set of tasks with declared dependencies, run in
// topological order.
type Flow struct {
	name  string
	tasks map[string]*task
	order []string
}

// NewFlow creates an empty flow identified by name (used only in error
// messages).
func NewFlow(name string) *Flow {
	return &Flow{name: name, tasks: make(map[string]*task)}
}

// AddTask registers fn under name, to run only after every task listed
// in deps has completed (or been skipped).
func (f *Flow) AddTask(name string, fn taskFn, deps ...string) {
	f.tasks[name] = &task{name: name, fn: fn, deps: deps}
	f.order = append(f.order, name)
}

type skipStepsKey struct{}

// SkipStepsKey is the context key Run reads to find the list of task
// names ([]string) that should be marked done without being executed.
var SkipStepsKey = skipStepsKey{}

// Run executes every task in dependency order, in the order tasks were
// added among those whose dependencies are already satisfied. It stops
// and returns the first task error encountered.
func (f *Flow) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("pipelines: flow %q: %w", f.name, err)
	}

	skip := map[string]bool{}
	if v := ctx.Value(SkipStepsKey); v != nil {
		if names, ok := v.([]string); ok {
			for _, n := range names {
				skip[n] = true
			}
		}
	}

	done := map[string]bool{}
	remaining := append([]string(nil), f.order...)

	for len(remaining) > 0 {
		var next []string
		progressed := false

		for _, name := range remaining {
			t := f.tasks[name]
			if !dependenciesSatisfied(t.deps, done) {
				next = append(next, name)
				continue
			}
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("pipelines: flow %q: %w", f.name, err)
			}
			if skip[name] {
				done[name] = true
				progressed = true
				continue
			}
			if err := t.fn(); err != nil {
				return fmt.Errorf("pipelines: flow %q: task %q: %w", f.name, name, err)
			}
			done[name] = true
			progressed = true
		}

		if !progressed {
			return fmt.Errorf("pipelines: flow %q: unresolved dependencies among tasks %v", f.name, remaining)
		}
		remaining = next
	}
	return nil
}

func dependenciesSatisfied(deps []string, done map[string]bool) bool {
	for _, d := range deps {
		if !done[d] {
			return false
		}
	}
	return true
}
