// Command tlc is the TL compiler CLI: build, check, and batch subcommands
// over internal/cli's Config/Run, using the same flag-parsing-plus-
// Run(cfg)-int convention but fronted by github.com/spf13/cobra for
// subcommand dispatch.
package main

import (
	"fmt"
	"os"

	"github.com/dl/tl/internal/cli"
	"github.com/spf13/cobra"
)

var exitFunc = os.Exit

func main() {
	exitFunc(run(os.Args[1:]))
}

func run(args []string) int {
	if cfgArgs := cli.LoadConfigArgs(); len(cfgArgs) > 0 {
		args = append(cfgArgs, args...)
	}

	var exitCode int
	root := newRootCmd(&exitCode)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tlc:", err)
		return 2
	}
	return exitCode
}

func newRootCmd(exitCode *int) *cobra.Command {
	var (
		entry      string
		out        string
		outDir     string
		arenaBytes int
		workers    int
		watch      bool
		verbose    bool
		colorFlag  string
		strictStr  bool
	)

	colorMode := func() cli.ColorMode {
		switch colorFlag {
		case "always":
			return cli.ColorAlways
		case "never":
			return cli.ColorNever
		default:
			return cli.ColorAuto
		}
	}

	root := &cobra.Command{
		Use:   "tlc",
		Short: "compile and execute TL topology programs",
	}
	root.PersistentFlags().StringVar(&colorFlag, "color", "auto", "color diagnostics: auto|always|never")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "trace module resolution and intrinsic dispatch")
	root.PersistentFlags().IntVar(&arenaBytes, "arena-bytes", 0, "arena capacity in bytes (0 = default)")
	root.PersistentFlags().BoolVar(&strictStr, "strict-strings", false, "reject string literals containing a raw control byte")

	buildCmd := &cobra.Command{
		Use:   "build <files...>",
		Short: "compile and execute a TL program, exporting its scene",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			*exitCode = cli.Run(cli.Config{
				Command:       cli.CommandBuild,
				Files:         args,
				EntryMesh:     entry,
				OutPath:       out,
				Watch:         watch,
				ArenaBytes:    arenaBytes,
				Verbose:       verbose,
				Color:         colorMode(),
				StrictStrings: strictStr,
			})
			return nil
		},
	}
	buildCmd.Flags().StringVar(&entry, "entry", "", "entry mesh name (required)")
	buildCmd.Flags().StringVar(&out, "out", "", "output path: scene.gltf or scene.obj (required)")
	buildCmd.Flags().BoolVar(&watch, "watch", false, "rebuild whenever a source file changes")

	checkCmd := &cobra.Command{
		Use:   "check <files...>",
		Short: "lex, parse, and link TL files without executing them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			*exitCode = cli.Run(cli.Config{
				Command:       cli.CommandCheck,
				Files:         args,
				Verbose:       verbose,
				Color:         colorMode(),
				StrictStrings: strictStr,
			})
			return nil
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "compile and execute every *.tl file under a directory concurrently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			*exitCode = cli.Run(cli.Config{
				Command:       cli.CommandBatch,
				BatchDir:      args[0],
				EntryMesh:     entry,
				OutDir:        outDir,
				Workers:       workers,
				ArenaBytes:    arenaBytes,
				Verbose:       verbose,
				Color:         colorMode(),
				StrictStrings: strictStr,
			})
			return nil
		},
	}
	batchCmd.Flags().StringVar(&entry, "entry", "", "entry mesh name (required)")
	batchCmd.Flags().StringVar(&outDir, "out-dir", "", "per-file export directory (required)")
	batchCmd.Flags().IntVar(&workers, "workers", 0, "worker count (0 = NumCPU)")

	root.AddCommand(buildCmd, checkCmd, batchCmd)
	return root
}
