package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/vanderheijden86/chartview/pkg/debug"
)

// maxSummaryStderr caps the stderr excerpt per failed hook in Summary.
const maxSummaryStderr = 200

// HookResult records one hook run.
type HookResult struct {
	Hook     Hook
	Phase    HookPhase
	Success  bool
	Stdout   string
	Stderr   string
	Duration time.Duration
	Error    error
}

// Executor runs configured hooks for one export.
type Executor struct {
	config  *Config
	ctx     ExportContext
	results []HookResult
}

// NewExecutor creates an executor for the given hooks and export.
func NewExecutor(config *Config, ctx ExportContext) *Executor {
	if config == nil {
		config = &Config{}
	}
	return &Executor{config: config, ctx: ctx}
}

// SetFiles records the written files for post-export hooks.
func (e *Executor) SetFiles(files []string) {
	e.ctx.Files = files
}

// RunPreExport runs pre-export hooks in order, stopping at the first
// failing hook whose on_error is "fail".
func (e *Executor) RunPreExport() error {
	for _, h := range e.config.Hooks.PreExport {
		res := e.run(h, PreExport)
		if !res.Success && h.OnError != "continue" {
			return fmt.Errorf("pre-export hook %q failed: %w", h.Name, res.Error)
		}
	}
	return nil
}

// RunPostExport runs every post-export hook and returns the first error from
// a hook whose on_error is "fail".
func (e *Executor) RunPostExport() error {
	var firstErr error
	for _, h := range e.config.Hooks.PostExport {
		res := e.run(h, PostExport)
		if !res.Success && h.OnError == "fail" && firstErr == nil {
			firstErr = fmt.Errorf("post-export hook %q failed: %w", h.Name, res.Error)
		}
	}
	return firstErr
}

// Results returns every hook run so far.
func (e *Executor) Results() []HookResult {
	return e.results
}

// Summary describes the runs, with a stderr excerpt for each failure.
func (e *Executor) Summary() string {
	if len(e.results) == 0 {
		return ""
	}
	var ok, failed int
	var sb strings.Builder
	for _, r := range e.results {
		if r.Success {
			ok++
			continue
		}
		failed++
		fmt.Fprintf(&sb, "  %s (%s): %v\n", r.Hook.Name, r.Phase, r.Error)
		if s := strings.TrimSpace(r.Stderr); s != "" {
			fmt.Fprintf(&sb, "    stderr: %s\n", truncate(s, maxSummaryStderr))
		}
	}
	return fmt.Sprintf("Hooks: %d succeeded, %d failed\n", ok, failed) + sb.String()
}

func (e *Executor) run(h Hook, phase HookPhase) HookResult {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	env := append(os.Environ(), e.ctx.ToEnv()...)
	lookup := envLookup(env)
	for k, v := range h.Env {
		env = append(env, k+"="+os.Expand(v, lookup))
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", h.Command)
	cmd.Env = env
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := HookResult{
		Hook:     h,
		Phase:    phase,
		Success:  err == nil,
		Stdout:   strings.TrimSpace(stdout.String()),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
		Error:    err,
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		res.Success = false
		res.Error = fmt.Errorf("timed out after %s", timeout)
	}
	debug.Log("hook %s (%s): success=%v in %s", h.Name, phase, res.Success, res.Duration)
	e.results = append(e.results, res)
	return res
}

// envLookup resolves $VAR against env, later entries winning.
func envLookup(env []string) func(string) string {
	m := make(map[string]string, len(env))
	for _, kv := range env {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return func(k string) string { return m[k] }
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

// RunHooks loads hooks.yaml from dir and returns an executor, or nil when
// noHooks is set or nothing is configured.
func RunHooks(dir string, ctx ExportContext, noHooks bool) (*Executor, error) {
	if noHooks || dir == "" {
		return nil, nil
	}
	loader := NewLoader(WithDir(dir))
	if err := loader.Load(); err != nil {
		return nil, err
	}
	for _, w := range loader.Warnings() {
		debug.Log("hooks: %s", w)
	}
	if !loader.HasHooks() {
		return nil, nil
	}
	return NewExecutor(loader.Config(), ctx), nil
}
