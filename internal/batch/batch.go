// Package batch compiles and executes every `*.tl` file under a directory
// concurrently, one worker per independent file. Within one file,
// execution stays single-threaded end-to-end per the language's execution
// model — concurrency exists only across independent programs, never
// inside one.
//
// The same N-worker, channel-fed, WaitGroup-joined pool shape used
// elsewhere for fan-out work, retargeted here to "compile and execute a
// TL program and export its scene" per file.
package batch

import (
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/dl/tl/internal/compiler"
	"github.com/dl/tl/internal/diag"
	"github.com/dl/tl/internal/export"
	"github.com/dl/tl/internal/loader"
	"github.com/dl/tl/internal/walker"
)

// Result is one file's compile-and-execute outcome.
type Result struct {
	Path   string
	SeqNum int
	OutPath string
	Err    error
}

// Options configures one batch run.
type Options struct {
	Dir        string
	EntryMesh  string
	OutDir     string
	Workers    int // 0 defaults to runtime.NumCPU()
	ArenaBytes int
	Format     export.Format
	// Logger, if set, traces module resolution and intrinsic dispatch for
	// every file this run compiles, correlated per-file by each Host's
	// own RunID. Nil by default.
	Logger *diag.Logger
	// StrictStrings rejects string literals containing a raw control byte
	// in every file this run compiles.
	StrictStrings bool
}

// Run discovers every *.tl file under opts.Dir (honoring a root-level
// .tlignore exclude list), compiles and executes each on its own worker,
// and exports its scene into opts.OutDir. Results stream back in
// completion order, each tagged with a sequence number.
func Run(opts Options) <-chan Result {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	files, _ := walker.Walk([]string{opts.Dir}, walker.WalkOptions{
		Recursive: true,
		NoIgnore:  true,
		Globs:     []string{"*.tl"},
	})
	ignores := loader.LoadIgnoreList(opts.Dir)

	filtered := make(chan walker.FileEntry, 256)
	go func() {
		defer close(filtered)
		for f := range files {
			if ignores.Excludes(f.Path) {
				continue
			}
			filtered <- f
		}
	}()

	resultCh := make(chan Result, workers*2)
	var seq atomic.Int64

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range filtered {
				seqNum := int(seq.Add(1))
				r := processFile(entry.Path, opts)
				r.SeqNum = seqNum
				resultCh <- r
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	return resultCh
}

func processFile(path string, opts Options) Result {
	res := Result{Path: path}

	sc, err := compiler.CompileAndExecute(compiler.Options{
		EntryPath:     path,
		EntryMesh:     opts.EntryMesh,
		ArenaBytes:    opts.ArenaBytes,
		Logger:        opts.Logger,
		StrictStrings: opts.StrictStrings,
	})
	if err != nil {
		res.Err = err
		return res
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	outExt := ".gltf"
	if opts.Format == export.FormatOBJ {
		outExt = ".obj"
	}
	outPath := filepath.Join(opts.OutDir, name+outExt)

	if err := export.Scene(sc, outPath, opts.Format); err != nil {
		res.Err = err
		return res
	}
	res.OutPath = outPath
	return res
}
