package export

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/vanderheijden86/chartview/pkg/hooks"
)

// Job is one export run with the hooks around it.
type Job struct {
	Base     string // output path; any extension is replaced per format
	Formats  []string
	Options  SnapshotOptions
	HooksDir string // directory holding hooks.yaml; empty skips hooks
	NoHooks  bool
}

// Result lists the written files and, when hooks ran, their summary.
type Result struct {
	Paths       []string
	HookSummary string
}

// Run executes pre-export hooks, writes every format, then runs
// post-export hooks. A failing pre-export hook cancels the export. A
// post-export failure is returned alongside the written paths.
func Run(ctx context.Context, job Job) (Result, error) {
	job.Base = strings.TrimSuffix(job.Base, filepath.Ext(job.Base))
	rows := job.Options.All
	if len(rows) == 0 {
		rows = job.Options.Points
	}
	exec, err := hooks.RunHooks(job.HooksDir, hooks.ExportContext{
		ExportPath:   job.Base,
		ExportFormat: strings.Join(job.Formats, ","),
		PointCount:   len(rows),
		Timestamp:    time.Now(),
	}, job.NoHooks)
	if err != nil {
		return Result{}, err
	}

	var res Result
	if exec != nil {
		if err := exec.RunPreExport(); err != nil {
			res.HookSummary = exec.Summary()
			return res, err
		}
	}

	paths, err := ExportAll(ctx, job.Base, job.Formats, job.Options)
	if err != nil {
		if exec != nil {
			res.HookSummary = exec.Summary()
		}
		return res, err
	}
	res.Paths = paths

	if exec != nil {
		exec.SetFiles(paths)
		err = exec.RunPostExport()
		res.HookSummary = exec.Summary()
	}
	return res, err
}
