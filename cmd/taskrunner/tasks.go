package main

import (
	"encoding/json"
	"fmt"

	"github.com/capiscio/taskrunner/pkg/options"
	"github.com/capiscio/taskrunner/pkg/task"
)

func init() {
	task.Register(task.Descriptor{
		ID:              "tasks",
		Description:     "List registered tasks",
		SkipCompatCheck: true,
		New: func(ctx task.Context, opts options.Map) task.Task {
			return &listTask{Base: task.NewBase(ctx, opts)}
		},
	})
}

type taskInfo struct {
	ID                  string `json:"id"`
	Description         string `json:"description,omitempty"`
	RequiresCompatCheck bool   `json:"requiresCompatCheck"`
}

// listTask prints the registry. Tasks that require the compatibility check
// are shown only with --all.
type listTask struct {
	task.Base
}

func (l *listTask) Run() (any, error) {
	reg := l.App.Registry()
	ids := reg.ListTasks(l.Options.Bool("all"))

	infos := make([]taskInfo, 0, len(ids))
	for _, id := range ids {
		d, err := reg.Resolve(id)
		if err != nil {
			return nil, err
		}
		infos = append(infos, taskInfo{
			ID:                  d.ID,
			Description:         d.Description,
			RequiresCompatCheck: d.RequiresCompatCheck(),
		})
	}

	if l.Options.String("format") == "--json" {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return nil, err
		}
		l.Logger.Message(string(data))
		return ids, nil
	}

	for _, info := range infos {
		l.Logger.Message(fmt.Sprintf("%-10s %s", info.ID, info.Description))
	}
	return ids, nil
}
