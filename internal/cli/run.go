package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dl/tl/internal/batch"
	"github.com/dl/tl/internal/compiler"
	"github.com/dl/tl/internal/diag"
	"github.com/dl/tl/internal/export"
	"github.com/dl/tl/internal/input"
	"github.com/dl/tl/internal/loader"
	"github.com/dl/tl/internal/scene"
	"github.com/dl/tl/internal/watch"
)

func logWarn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "tlc: "+format+"\n", args...)
}

// Run executes cfg's command. Returns exit code: 0 = success, 1 = a
// reported error (compile/check/build failure), 2 = usage/config error.
func Run(cfg Config) int {
	if err := cfg.Validate(); err != nil {
		logWarn("%v", err)
		return 2
	}

	styles := diagStyles(cfg.Color)

	switch cfg.Command {
	case CommandCheck:
		return runCheck(cfg, styles)
	case CommandBuild:
		return runBuild(cfg, styles)
	case CommandBatch:
		return runBatch(cfg)
	default:
		logWarn("unknown command")
		return 2
	}
}

func diagStyles(mode ColorMode) diag.Styles {
	useColor := false
	switch mode {
	case ColorAlways:
		useColor = true
	case ColorNever:
		useColor = false
	case ColorAuto:
		useColor = diag.StdoutIsTerminal()
	}
	if !useColor {
		return diag.NoStyles()
	}
	return diag.NewStyles()
}

// runCheck lexes, parses, and links every file independently (each taken
// as its own entry point), reporting every error found without executing
// anything.
func runCheck(cfg Config, styles diag.Styles) int {
	ok := true
	for _, f := range cfg.Files {
		var ld *loader.Loader
		if cfg.StrictStrings {
			ld = loader.NewStrict(input.NewBufferedReader())
		} else {
			ld = loader.New(input.NewBufferedReader())
		}
		if _, err := ld.Load(f); err != nil {
			ok = false
			reportError(f, err, styles)
		}
	}
	if !ok {
		return 1
	}
	fmt.Printf("tlc: %d file(s) OK\n", len(cfg.Files))
	return 0
}

// runBuild compiles and executes every file in cfg.Files (each its own
// entry program against cfg.EntryMesh), merges their scenes, and exports
// the result once to cfg.OutPath — so `tlc build a.tl b.tl --out s.gltf`
// bundles independent programs into one scene the same way a batch run
// would, just synchronously and into a single file.
func runBuild(cfg Config, styles diag.Styles) int {
	format, err := cfg.Format()
	if err != nil {
		logWarn("%v", err)
		return 2
	}

	build := func() int { return buildOnce(cfg, format, styles) }

	if !cfg.Watch {
		return build()
	}
	return runBuildWatch(cfg, build)
}

func buildOnce(cfg Config, format export.Format, styles diag.Styles) int {
	logger := diag.NewLogger(cfg.Verbose)

	merged := &scene.Scene{}
	for _, f := range cfg.Files {
		sc, err := compiler.CompileAndExecute(compiler.Options{
			EntryPath:     f,
			EntryMesh:     cfg.EntryMesh,
			ArenaBytes:    cfg.ArenaBytes,
			Logger:        logger,
			StrictStrings: cfg.StrictStrings,
		})
		if err != nil {
			reportError(f, err, styles)
			return 1
		}
		merged.Merge(sc)
	}

	if err := export.Scene(merged, cfg.OutPath, format); err != nil {
		logWarn("export: %v", err)
		return 1
	}
	logger.Info("build complete", "out", cfg.OutPath, "meshes", len(merged.Meshes))
	return 0
}

func runBatch(cfg Config) int {
	logger := diag.NewLogger(cfg.Verbose)
	format, err := formatFromOutDir(cfg.OutDir)
	if err != nil {
		logWarn("%v", err)
		return 2
	}

	results := batch.Run(batch.Options{
		Dir:           cfg.BatchDir,
		EntryMesh:     cfg.EntryMesh,
		OutDir:        cfg.OutDir,
		Workers:       cfg.Workers,
		ArenaBytes:    cfg.ArenaBytes,
		Format:        format,
		Logger:        logger,
		StrictStrings: cfg.StrictStrings,
	})

	ok := true
	for r := range results {
		if r.Err != nil {
			ok = false
			logWarn("%s: %v", r.Path, r.Err)
			continue
		}
		logger.Info("batch compiled", "file", r.Path, "out", r.OutPath)
	}
	if !ok {
		return 1
	}
	return 0
}

// formatFromOutDir defaults batch exports to glTF; a future --format flag
// can override this once batch needs to emit both formats in one run.
func formatFromOutDir(string) (export.Format, error) {
	return export.FormatGLTF, nil
}

func reportError(file string, err error, styles diag.Styles) {
	if de, ok := err.(*diag.Error); ok {
		fmt.Fprintln(os.Stderr, de.Render(styles))
		return
	}
	logWarn("%s: %v", file, err)
}

func runBuildWatch(cfg Config, build func() int) int {
	w, err := watch.New()
	if err != nil {
		logWarn("failed to create watcher: %v", err)
		return 2
	}
	defer w.Close()

	watchDirs := map[string]bool{}
	for _, f := range cfg.Files {
		watchDirs[filepath.Dir(f)] = true
	}
	for dir := range watchDirs {
		if err := w.Add(dir); err != nil {
			logWarn("failed to watch %s: %v", dir, err)
			return 2
		}
	}

	code := build()
	for evt := range w.Events() {
		if evt.Err != nil {
			logWarn("watch: %v", evt.Err)
			continue
		}
		if evt.Type == watch.EventDeleted {
			logWarn("watched path removed: %s", evt.Path)
			continue
		}
		code = build()
	}
	return code
}
