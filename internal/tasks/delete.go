package tasks

import (
	"context"
	"fmt"
	"os"

	bcerrors "github.com/conduit-lang/buildconf/internal/errors"
)

// DeleteTask recursively deletes a path
type DeleteTask struct {
	name   string
	target string
}

// NewDeleteTask creates a task that deletes target and everything under it
func NewDeleteTask(name, target string) *DeleteTask {
	return &DeleteTask{name: name, target: target}
}

// Name returns the task name
func (t *DeleteTask) Name() string {
	return t.name
}

// Description returns a one-line summary
func (t *DeleteTask) Description() string {
	return fmt.Sprintf("Deletes %s", t.target)
}

// Target returns the path the task deletes
func (t *DeleteTask) Target() string {
	return t.target
}

// Run deletes the target. A missing target is not an error.
func (t *DeleteTask) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := os.Lstat(t.target); os.IsNotExist(err) {
		return nil
	}

	if err := os.RemoveAll(t.target); err != nil {
		return bcerrors.NewFilesystemError(bcerrors.ErrDeleteFailed, t.target, err)
	}
	return nil
}
