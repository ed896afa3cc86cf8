// Package app wires the library loader, the generator and the batch runner
// into one synchronous pipeline behind a validated configuration.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/vk/oslnodes/internal/batch"
	"github.com/vk/oslnodes/internal/ctxlog"
	"github.com/vk/oslnodes/internal/fsutil"
	"github.com/vk/oslnodes/internal/library"
	"github.com/vk/oslnodes/internal/osl"
)

// stdlibIncludeDir is the OSL stdlib include directory shipped inside the
// libraries tree, appended to the compiler include set when present.
const stdlibIncludeDir = "stdlib/genosl/include"

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, cfg *Config) *App {
	return &App{
		outW:   outW,
		logger: newLogger(cfg.LogLevel, outW),
		config: cfg,
	}
}

// Run loads the libraries and executes the batch build. It returns nil
// only when every eligible node definition generated and compiled cleanly.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("Effective configuration.",
		"outputPath", a.config.OutputPath,
		"oslCompilerPath", a.config.CompilerPath,
		"oslIncludePath", a.config.IncludePath,
		"librariesPath", a.config.LibrariesPath,
		"libraries", a.config.Libraries,
		"prefix", a.config.Prefix,
	)

	doc, err := library.NewLoader().Load(ctx, a.config.LibrariesPath, a.config.Libraries)
	if err != nil {
		return err
	}
	a.logger.Info("Libraries loaded.", "nodedefs", len(doc.NodeDefs()))

	includeDirs := []string{a.config.IncludePath}
	if stdlib := filepath.Join(a.config.LibrariesPath, stdlibIncludeDir); fsutil.DirExists(stdlib) {
		includeDirs = append(includeDirs, stdlib)
	}

	runner := batch.NewRunner(
		doc,
		osl.NewGenerator(osl.Default),
		&batch.Oslc{Path: a.config.CompilerPath},
		batch.Config{
			OutputDir:   a.config.OutputPath,
			IncludeDirs: includeDirs,
			Prefix:      a.config.Prefix,
		},
	)

	logPath := filepath.Join(a.config.OutputPath, batch.LogFileName)
	if err := runner.Run(ctx); err != nil {
		if errors.Is(err, batch.ErrBatchFailed) {
			a.logger.Error("Failed to generate and compile all node definitions; see the log for details.",
				"log", logPath)
		}
		return err
	}

	a.logger.Info("All node definitions built successfully.", "log", logPath)
	return nil
}
