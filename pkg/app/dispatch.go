package app

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"

	"github.com/capiscio/taskrunner/pkg/options"
	"github.com/capiscio/taskrunner/pkg/task"
)

// TaskID selects the task the raw arguments ask for: the first argument, in
// declaration order, whose value is boolean true.
func (a *App) TaskID() (string, error) {
	var id string
	a.args.Each(func(name string, value any) bool {
		if b, ok := value.(bool); ok && b {
			id = name
			return false
		}
		return true
	})

	if id == "" {
		return "", newError(CodeTaskNotProvided, "Task not provided", nil)
	}
	if !a.registry.Has(id) {
		return "", newError(CodeTaskNotImplemented, fmt.Sprintf("Task not implemented: %s", id), nil)
	}
	return id, nil
}

// Dispatch instantiates the task registered under id with the merged
// options and runs it. Override keys win over the stored options.
func (a *App) Dispatch(id string, override options.Map) (result any, err error) {
	d, err := a.registry.Resolve(id)
	if err != nil {
		return nil, newError(CodeTaskNotDefined, fmt.Sprintf("Task %s is not defined", id), err)
	}

	merged := options.Merge(override, a.opts)
	a.log.Debug(fmt.Sprintf("running task %s (run %s)", id, a.runID))

	var t task.Task
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			result, err = nil, executionError(t, cause)
		}
	}()

	t = d.New(a, merged)
	if t == nil {
		return nil, newError(CodeTaskNotDefined, fmt.Sprintf("Task %s is not defined", id), nil)
	}

	result, err = t.Run()
	if err != nil {
		return nil, executionError(t, err)
	}
	return result, nil
}

// Run is the outermost dispatch boundary. An empty id is resolved from the
// raw arguments. Every failure is logged once and reported as ExitFailure.
func (a *App) Run(id string, override options.Map) int {
	_, code := a.RunResult(id, override)
	return code
}

// RunResult behaves like Run and also passes the task's result through.
func (a *App) RunResult(id string, override options.Map) (any, int) {
	if id == "" {
		var err error
		id, err = a.TaskID()
		if err != nil {
			a.fail(err)
			return nil, ExitFailure
		}
	}

	result, err := a.Dispatch(id, override)
	if err != nil {
		a.fail(err)
		return nil, ExitFailure
	}
	return result, ExitOK
}

func (a *App) fail(err error) {
	a.log.Error(describe(err, a.debug))
}

// executionError wraps a task failure and locates it at the task's Run
// method. Errors that already carry a dispatch code pass through.
func executionError(t task.Task, cause error) error {
	var e *Error
	if errors.As(cause, &e) {
		return cause
	}
	e = &Error{Code: CodeTaskExecutionFailed, Message: cause.Error(), Cause: cause}
	e.File, e.Line = runLocation(t)
	return e
}

func runLocation(t task.Task) (string, int) {
	if t == nil {
		return "", 0
	}
	typ := reflect.TypeOf(t)
	if typ.Kind() == reflect.Ptr {
		// Value receivers are reached through a generated pointer wrapper.
		if m, ok := typ.Elem().MethodByName("Run"); ok {
			return funcLocation(m)
		}
	}
	m, ok := typ.MethodByName("Run")
	if !ok {
		return "", 0
	}
	return funcLocation(m)
}

func funcLocation(m reflect.Method) (string, int) {
	fn := runtime.FuncForPC(m.Func.Pointer())
	if fn == nil {
		return "", 0
	}
	return fn.FileLine(fn.Entry())
}
