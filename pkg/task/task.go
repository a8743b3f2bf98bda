// Package task defines the contract every dispatchable task satisfies and the
// registry the dispatcher resolves task ids against.
//
// Task packages self-register from init:
//
//	func init() {
//		task.Register(task.Descriptor{
//			ID:  "build",
//			New: func(ctx task.Context, opts options.Map) task.Task { ... },
//		})
//	}
//
// The host application builds one Registry from Registered() at startup.
package task

import (
	"github.com/capiscio/taskrunner/pkg/logger"
	"github.com/capiscio/taskrunner/pkg/options"
)

// Task is a unit of work. Run completes or fails; it never suspends.
type Task interface {
	Run() (any, error)
}

// Context is the part of the App Context a task can see.
type Context interface {
	Logger() logger.Logger
	Options() options.Map
	Registry() *Registry
	RunID() string
}

// Factory instantiates a task with the App Context and its merged options.
type Factory func(ctx Context, opts options.Map) Task

// Descriptor identifies one task implementation.
type Descriptor struct {
	// ID is the dispatch identifier. Empty means the implementation is not
	// independently dispatchable and is never registered.
	ID string

	// Description is shown by task listings.
	Description string

	// SkipCompatCheck opts out of the host compatibility check. The zero
	// value means the task requires it.
	SkipCompatCheck bool

	// New builds the task. A nil factory makes the descriptor ineligible.
	New Factory
}

// RequiresCompatCheck reports whether the task needs the compatibility check.
func (d Descriptor) RequiresCompatCheck() bool {
	return !d.SkipCompatCheck
}

// Base carries the state every task is constructed with. Embed it in task
// implementations.
type Base struct {
	App     Context
	Options options.Map
	Logger  logger.Logger
}

// NewBase stores ctx, opts and the logger handle obtained from ctx.
func NewBase(ctx Context, opts options.Map) Base {
	var log logger.Logger = logger.Nop{}
	if ctx != nil && ctx.Logger() != nil {
		log = ctx.Logger()
	}
	return Base{App: ctx, Options: opts, Logger: log}
}
