package main

import (
	"encoding/json"
	"fmt"

	"github.com/capiscio/taskrunner/pkg/options"
	"github.com/capiscio/taskrunner/pkg/task"
)

func init() {
	task.Register(task.Descriptor{
		ID:              "version",
		Description:     "Print version information",
		SkipCompatCheck: true,
		New: func(ctx task.Context, opts options.Map) task.Task {
			return &versionTask{Base: task.NewBase(ctx, opts)}
		},
	})
}

type versionTask struct {
	task.Base
}

func (v *versionTask) Run() (any, error) {
	info := map[string]string{
		"name":    appName,
		"version": version,
		"run":     v.App.RunID(),
	}

	if v.Options.String("format") == "--json" {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return nil, err
		}
		v.Logger.Message(string(data))
		return info, nil
	}

	v.Logger.Message(fmt.Sprintf("%s %s", appName, version))
	v.Logger.Debug(fmt.Sprintf("run %s", info["run"]))
	return info, nil
}
