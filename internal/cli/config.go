package cli

import (
	"fmt"
	"strings"

	"github.com/dl/tl/internal/export"
)

// ColorMode controls when colored diagnostics are used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // color when stdout is a terminal
	ColorAlways                  // always use color
	ColorNever                   // never use color
)

// Command selects which tlc subcommand Run executes.
type Command int

const (
	CommandBuild Command = iota
	CommandCheck
	CommandBatch
)

// Config holds all configuration for one tlc invocation.
type Config struct {
	Command Command

	// Files are the entry .tl files for build/check.
	Files []string
	// EntryMesh names the mesh whose create() runs.
	EntryMesh string

	// OutPath is build's export target; its extension (.gltf or .obj)
	// selects the export format.
	OutPath string
	// Triangulate is not read by Run and has no tlc flag: glTF export
	// always triangulates and OBJ export always writes quad faces.
	Triangulate bool
	// Watch re-runs build whenever a file in an entry file's directory is
	// created or modified; imported files in other directories are not
	// watched.
	Watch bool

	// BatchDir is batch's source directory.
	BatchDir string
	// OutDir is batch's per-file export directory.
	OutDir string

	ArenaBytes int
	Workers    int
	Verbose    bool
	Color      ColorMode
	// StrictStrings rejects string literals containing a raw control byte
	// anywhere in a program's transitive import graph.
	StrictStrings bool
}

// Format derives the export format from OutPath's extension.
func (c *Config) Format() (export.Format, error) {
	switch {
	case strings.HasSuffix(c.OutPath, ".gltf"):
		return export.FormatGLTF, nil
	case strings.HasSuffix(c.OutPath, ".obj"):
		return export.FormatOBJ, nil
	default:
		return 0, fmt.Errorf("unrecognized output extension %q (want .gltf or .obj)", c.OutPath)
	}
}

// Validate checks that the config is complete and internally consistent
// for its Command.
func (c *Config) Validate() error {
	switch c.Command {
	case CommandBuild:
		if len(c.Files) == 0 {
			return fmt.Errorf("build: no source files given")
		}
		if c.EntryMesh == "" {
			return fmt.Errorf("build: --entry is required")
		}
		if c.OutPath == "" {
			return fmt.Errorf("build: --out is required")
		}
		if _, err := c.Format(); err != nil {
			return err
		}
	case CommandCheck:
		if len(c.Files) == 0 {
			return fmt.Errorf("check: no source files given")
		}
	case CommandBatch:
		if c.BatchDir == "" {
			return fmt.Errorf("batch: no source directory given")
		}
		if c.EntryMesh == "" {
			return fmt.Errorf("batch: --entry is required")
		}
		if c.OutDir == "" {
			return fmt.Errorf("batch: --out-dir is required")
		}
	default:
		return fmt.Errorf("unknown command")
	}
	if c.ArenaBytes < 0 {
		return fmt.Errorf("invalid --arena-bytes: %d", c.ArenaBytes)
	}
	return nil
}
