package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/chartview/internal/datasource"
	_ "github.com/vanderheijden86/chartview/internal/ttyguard"
	"github.com/vanderheijden86/chartview/pkg/config"
	"github.com/vanderheijden86/chartview/pkg/debug"
	"github.com/vanderheijden86/chartview/pkg/export"
	"github.com/vanderheijden86/chartview/pkg/metrics"
	"github.com/vanderheijden86/chartview/pkg/ui"
	"github.com/vanderheijden86/chartview/pkg/version"
	"github.com/vanderheijden86/chartview/pkg/viewport"
	"github.com/vanderheijden86/chartview/pkg/watcher"
)

// promptExport is the --export value that asks for a path interactively.
const promptExport = "-"

type options struct {
	cpuProfile string
	help       bool
	version    bool
	dataPath   string
	table      string
	configPath string
	logFile    string
	exportPath string
	format     string
	noMouse    bool
	noHooks    bool
}

func parseFlags(args []string, errOut io.Writer) (options, *flag.FlagSet, error) {
	var o options
	fs := flag.NewFlagSet("cv", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&o.cpuProfile, "cpu-profile", "", "Write CPU profile to file")
	fs.BoolVar(&o.help, "help", false, "Show help")
	fs.BoolVar(&o.version, "version", false, "Show version")
	fs.StringVar(&o.dataPath, "data", "", "Dataset file (.csv, .json, .db, .sqlite); built-in sample when empty")
	fs.StringVar(&o.table, "table", "", "SQLite table holding label, value_a, value_b")
	fs.StringVar(&o.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/chartview/config.yaml)")
	fs.StringVar(&o.logFile, "log-file", "", "Write debug and Bubble Tea logs to this file")
	fs.StringVar(&o.exportPath, "export", "", "Export the chart to this path and exit; '-' prompts for a path")
	fs.StringVar(&o.format, "format", "", "Export format: csv, png, svg, sqlite or all")
	fs.BoolVar(&o.noMouse, "no-mouse", false, "Disable wheel zoom and drag pan")
	fs.BoolVar(&o.noHooks, "no-hooks", false, "Skip export hooks from hooks.yaml")
	err := fs.Parse(args)
	return o, fs, err
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, fs, err := parseFlags(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	// CPU profiling support
	if opts.cpuProfile != "" {
		f, err := os.Create(opts.cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	if opts.help {
		fmt.Println("Usage: cv [options]")
		fmt.Println("\nAn interactive terminal chart with wheel zoom, drag pan and label search.")
		fs.PrintDefaults()
		return 0
	}

	if opts.version {
		fmt.Printf("cv %s\n", version.Version)
		return 0
	}

	cleanup, err := setupLogging(opts.logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		return 1
	}
	defer cleanup()

	cfgPath, cfg, err := resolveConfig(opts)
	if err != nil {
		// Non-fatal: continue with defaults
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	ds, src, loadErr := datasource.Load(cfg.Data.Path, cfg.Data.Table)

	if opts.exportPath != "" {
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "Error loading data: %v\n", loadErr)
			return 1
		}
		v, err := viewport.New(ds)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		path, format, err := exportTarget(opts, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		res, err := runExport(ctx, v, cfg, path, format, hooksDir(cfgPath, opts.noHooks))
		if res.HookSummary != "" {
			fmt.Fprint(os.Stderr, res.HookSummary)
		}
		for _, p := range res.Paths {
			fmt.Println(p)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			return 1
		}
		return 0
	}

	modelOpts := []ui.Option{
		ui.WithSource(src.String()),
		ui.WithLoadError(loadErr),
		ui.WithHooksDir(hooksDir(cfgPath, opts.noHooks)),
	}
	if w := startConfigWatcher(cfgPath); w != nil {
		defer w.Stop()
		modelOpts = append(modelOpts, ui.WithConfigWatcher(w, cfgPath))
	}

	m := ui.NewModel(ds, cfg, modelOpts...)
	defer m.Close()

	if err := runTUIProgram(m, cfg.MouseEnabled()); err != nil {
		fmt.Printf("Error running chart viewer: %v\n", err)
		return 1
	}

	if metrics.Enabled() {
		debug.Log("metrics:\n%s", metrics.Report())
	}
	return 0
}

// resolveConfig loads the config file and applies flag overrides. On a load
// error the defaults are used, still with overrides applied.
func resolveConfig(opts options) (string, config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.ConfigPath()
	}
	cfg := config.DefaultConfig()
	var err error
	if path != "" {
		cfg, err = config.LoadFrom(path)
	}

	if opts.dataPath != "" {
		cfg.Data.Path = opts.dataPath
	}
	if opts.table != "" {
		cfg.Data.Table = opts.table
	}
	if opts.format != "" {
		cfg.Export.Format = opts.format
	}
	if opts.noMouse {
		off := false
		cfg.UI.Mouse = &off
	}
	return path, cfg, err
}

// exportTarget returns the output path and format for --export, prompting
// when the path is "-" and stdin is a terminal.
func exportTarget(opts options, cfg config.Config) (string, string, error) {
	path, format := opts.exportPath, cfg.Export.Format
	if path != promptExport {
		return path, format, nil
	}
	def := filepath.Join(cfg.Export.Dir, "chart")
	if !export.CanPrompt() {
		return def, format, nil
	}
	res, err := export.Prompt(def, format)
	if err != nil {
		return "", "", err
	}
	return res.Path, res.Format, nil
}

// runExport writes the full-extent chart in the requested formats, running
// hooks from hooksDir around it.
func runExport(ctx context.Context, v *viewport.Viewport, cfg config.Config, path, format, hooksDir string) (export.Result, error) {
	formats, err := export.ExpandFormat(format)
	if err != nil {
		return export.Result{}, err
	}
	return export.Run(ctx, export.Job{
		Base:     path,
		Formats:  formats,
		Options:  ui.SnapshotOptions(v, cfg),
		HooksDir: hooksDir,
	})
}

// hooksDir is where hooks.yaml lives: next to the config file.
func hooksDir(cfgPath string, disabled bool) string {
	if disabled || cfgPath == "" {
		return ""
	}
	return filepath.Dir(cfgPath)
}

func startConfigWatcher(path string) *watcher.Watcher {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	w, err := watcher.New(path, watcher.WithOnError(func(err error) {
		debug.Log("config watcher: %v", err)
	}))
	if err != nil {
		debug.Log("config watcher: %v", err)
		return nil
	}
	if err := w.Start(); err != nil {
		debug.Log("config watcher: %v", err)
		return nil
	}
	return w
}

func runTUIProgram(m ui.Model, mouse bool) error {
	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	}
	if mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, progOpts...)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set CV_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("CV_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}
