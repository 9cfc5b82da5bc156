package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/app"
	"todo/internal/exitcode"
	"todo/internal/service"
)

// errTaskLookup marks a reference that matched nothing.
type errTaskLookup struct{ msg string }

func (e *errTaskLookup) Error() string { return e.msg }

// filterFlag binds --filter to f, defaulting to "all".
func filterFlag(fs *flag.FlagSet, f *string) {
	fs.StringVar(f, "filter", string(service.FilterAll), "")
}

// findTask fetches a task list once and resolves ref against it. Numbers
// index the list selected by filter; ids are looked up among all tasks.
func findTask(ctx context.Context, a *app.App, filter string, ref TaskRef) (service.Task, error) {
	f, err := service.ParseFilter(filter)
	if err != nil {
		return service.Task{}, &app.ValidationError{Field: "filter", Message: err.Error()}
	}
	if ref.ID != "" {
		f = service.FilterAll
	}
	if err := a.SetFilter(ctx, f); err != nil {
		return service.Task{}, err
	}

	tasks := a.Store.State().Tasks
	if ref.ID != "" {
		for _, t := range tasks {
			if t.ID == ref.ID {
				return t, nil
			}
		}
		return service.Task{}, &errTaskLookup{fmt.Sprintf("task not found: %s", ref.ID)}
	}
	if ref.Num < 1 || ref.Num > len(tasks) {
		return service.Task{}, &errTaskLookup{fmt.Sprintf("task number out of range: %d", ref.Num)}
	}
	return tasks[ref.Num-1], nil
}

// resolveRef parses args as a task reference and looks it up. On failure
// it has already reported the error and returns the exit code.
func resolveRef(ctx context.Context, a *app.App, filter string, args []string, errOut io.Writer) (service.Task, int, bool) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		return service.Task{}, userError(errOut, "%s", err), false
	}
	task, err := findTask(ctx, a, filter, ref)
	if err != nil {
		return service.Task{}, fail(errOut, err), false
	}
	return task, exitcode.Success, true
}
