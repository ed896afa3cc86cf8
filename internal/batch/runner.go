// Package batch drives the library-wide build: one generated source file
// and one compiled artifact per eligible node definition, a consolidated
// log file, and an aggregate success/failure signal.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/oslnodes/internal/ctxlog"
	"github.com/vk/oslnodes/internal/library"
	"github.com/vk/oslnodes/internal/osl"
	"github.com/vk/oslnodes/internal/shader"
)

const (
	// LogFileName is the consolidated log written into the output directory.
	LogFileName = "libs_to_oso.log"

	// SourceExt and ArtifactExt name the per-definition files.
	SourceExt   = ".osl"
	ArtifactExt = ".oso"
)

// ErrBatchFailed is returned when at least one eligible definition failed
// to generate or compile. Per-item detail lives in the log file.
var ErrBatchFailed = errors.New("one or more node definitions failed to build")

// Config holds the batch run parameters, already validated by the CLI
// layer.
type Config struct {
	// OutputDir receives the source files, artifacts and log.
	OutputDir string

	// IncludeDirs is the external include set passed to the compiler in
	// addition to each shader's own aggregated include paths.
	IncludeDirs []string

	// Prefix, when non-empty, is prepended to every public name with an
	// underscore separator.
	Prefix string
}

// Runner iterates a library document and builds every eligible definition.
// It borrows the document: each iteration adds one transient instance and
// removes it again before the next, so the document never grows.
type Runner struct {
	doc      *library.Document
	gen      *osl.Generator
	compiler Compiler
	cfg      Config
}

// NewRunner creates a batch runner over the given document.
func NewRunner(doc *library.Document, gen *osl.Generator, compiler Compiler, cfg Config) *Runner {
	return &Runner{doc: doc, gen: gen, compiler: compiler, cfg: cfg}
}

// Run processes every node definition in catalog order. Definitions
// without an implementation for the active target are skipped with a log
// notice; any generation or compile failure is logged with full diagnostic
// detail and the run continues with the next definition.
//
// The returned error is nil only when every eligible definition built
// cleanly. Failures never abort the run.
func (r *Runner) Run(ctx context.Context) error {
	logFile, err := os.Create(filepath.Join(r.cfg.OutputDir, LogFileName))
	if err != nil {
		return fmt.Errorf("failed to create batch log: %w", err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx = ctxlog.WithLogger(ctx, logger)

	target := r.gen.Variant().Target
	failed := false
	built := 0
	skipped := 0

	for _, def := range r.doc.NodeDefs() {
		name := r.publicName(def.Name)

		if def.Implementation(target) == nil {
			logger.Info("Definition provides no implementation for the active target and will be skipped.",
				"definition", def.Name, "target", target)
			skipped++
			continue
		}

		if err := r.buildOne(ctx, def, name); err != nil {
			logger.Error("Failed to generate and compile node definition.",
				"definition", def.Name, "name", name, "error", err)
			var cerr *CompileError
			if errors.As(err, &cerr) {
				for _, line := range cerr.Output {
					logger.Error(line)
				}
			}
			failed = true
			continue
		}
		built++
	}

	logger.Info("Batch run finished.", "built", built, "skipped", skipped, "failed", failed)
	if failed {
		return ErrBatchFailed
	}
	return nil
}

// buildOne is the per-definition unit of work: instantiate, generate,
// write, compile. It leaves the document exactly as it found it, which
// keeps every iteration independent of the others.
func (r *Runner) buildOne(ctx context.Context, def *library.NodeDef, name string) error {
	g, err := r.doc.AddNodeInstance(def, name)
	if err != nil {
		return err
	}
	defer r.doc.RemoveNodeInstance(name)

	sh, err := r.gen.Generate(ctx, name, g, r.doc)
	if err != nil {
		return err
	}

	sourcePath := filepath.Join(r.cfg.OutputDir, name+SourceExt)
	if err := os.WriteFile(sourcePath, []byte(sh.SourceCode()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", sourcePath, err)
	}

	artifactPath := filepath.Join(r.cfg.OutputDir, name+ArtifactExt)
	return r.compiler.Compile(ctx, sourcePath, artifactPath, r.includeDirs(sh))
}

// includeDirs combines the external include set with the shader's own
// aggregated implementation directories, externals first.
func (r *Runner) includeDirs(sh *shader.Shader) []string {
	dirs := append([]string(nil), r.cfg.IncludeDirs...)
	if attr := sh.Attribute(shader.AttrIncludePaths); attr != "" {
		dirs = append(dirs, strings.Split(attr, ",")...)
	}
	return dirs
}

func (r *Runner) publicName(defName string) string {
	name := r.gen.Variant().PublicName(defName)
	if r.cfg.Prefix != "" {
		name = r.cfg.Prefix + "_" + name
	}
	return name
}
