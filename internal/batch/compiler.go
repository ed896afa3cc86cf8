package batch

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Compiler turns a generated source file into a compiled artifact next to
// it. Implementations block until the compile finishes; no timeout is
// enforced.
type Compiler interface {
	Compile(ctx context.Context, sourcePath, artifactPath string, includeDirs []string) error
}

// Oslc invokes the external oslc binary.
type Oslc struct {
	// Path is the oslc executable, validated by the caller.
	Path string
}

// Compile runs `oslc -o <artifact> -I<dir>... <source>` and captures the
// compiler's diagnostics verbatim on failure.
func (c *Oslc) Compile(ctx context.Context, sourcePath, artifactPath string, includeDirs []string) error {
	args := []string{"-o", artifactPath}
	for _, dir := range includeDirs {
		if dir == "" {
			continue
		}
		args = append(args, "-I"+dir)
	}
	args = append(args, sourcePath)

	cmd := exec.CommandContext(ctx, c.Path, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return &CompileError{
			Source: sourcePath,
			Err:    err,
			Output: splitDiagnostics(out),
		}
	}
	return nil
}

// CompileError reports an external compiler failure, preserving the
// compiler's own structured diagnostic lines for the log.
type CompileError struct {
	Source string
	Err    error
	Output []string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling %s: %v", e.Source, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

func splitDiagnostics(out []byte) []string {
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
