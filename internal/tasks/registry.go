// Package tasks holds externally invokable build actions registered during a
// configuration pass.
package tasks

import (
	"context"
	"sort"

	bcerrors "github.com/conduit-lang/buildconf/internal/errors"
	strutil "github.com/conduit-lang/buildconf/internal/util/strings"
)

// Task is a named action with a single side effect
type Task interface {
	Name() string
	Description() string
	Run(ctx context.Context) error
}

// Registry maps task names to tasks
type Registry struct {
	tasks map[string]Task
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]Task)}
}

// Register adds a task. Names are unique.
func (r *Registry) Register(task Task) error {
	if _, exists := r.tasks[task.Name()]; exists {
		return bcerrors.NewConfigurationError(bcerrors.ErrDuplicateTask).
			WithMessage("task %q is already registered", task.Name())
	}
	r.tasks[task.Name()] = task
	return nil
}

// Lookup finds a task by name
func (r *Registry) Lookup(name string) (Task, bool) {
	task, ok := r.tasks[name]
	return task, ok
}

// Names returns registered task names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run invokes the named task. Failures are returned unchanged, never retried.
func (r *Registry) Run(ctx context.Context, name string) error {
	task, ok := r.tasks[name]
	if !ok {
		return bcerrors.NewConfigurationError(bcerrors.ErrUnknownTask).
			WithMessage("task %q not found", name).
			WithSuggestions(strutil.FindSimilar(name, r.Names())...)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return task.Run(ctx)
}
