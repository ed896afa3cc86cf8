package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vk/oslnodes/internal/app"
	"github.com/vk/oslnodes/internal/fsutil"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments and validates the setup paths. It
// returns a populated Config, a boolean indicating if the program should
// exit cleanly, or an ExitError. All path validation failures are fatal
// and happen here, before any work begins.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("oslnodes", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
oslnodes - batch-compiles node-definition libraries to OSL shader objects.

Usage:
  oslnodes [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	outputPathFlag := flagSet.String("outputPath", "", "Output directory for the generated .osl/.oso files and the log (created if absent).")
	compilerPathFlag := flagSet.String("oslCompilerPath", "", "Path to the oslc executable.")
	includePathFlag := flagSet.String("oslIncludePath", "", "Directory of extra OSL headers passed to the compiler.")
	librariesPathFlag := flagSet.String("librariesPath", "libraries", "Root directory of the node-definition libraries.")
	librariesFlag := flagSet.String("libraries", "", "Comma-separated library names to load; empty loads everything. The targets library is always included.")
	prefixFlag := flagSet.String("prefix", "", "Optional prefix prepended to every public shader name.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 1, Message: err.Error()}
	}

	if *outputPathFlag == "" && *compilerPathFlag == "" && *includePathFlag == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 1, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	// The output path is created on demand; failure to end up with a
	// directory is fatal.
	if *outputPathFlag == "" {
		return nil, false, &ExitError{Code: 1, Message: "missing required option: --outputPath"}
	}
	if err := os.MkdirAll(*outputPathFlag, 0o755); err != nil || !fsutil.DirExists(*outputPathFlag) {
		return nil, false, &ExitError{Code: 1, Message: fmt.Sprintf("failed to find and/or create the provided output path: %s", *outputPathFlag)}
	}

	if !fsutil.FileExists(*compilerPathFlag) {
		return nil, false, &ExitError{Code: 1, Message: fmt.Sprintf("the provided path to the OSL compiler is not valid: %s", *compilerPathFlag)}
	}

	if !fsutil.DirExists(*includePathFlag) {
		return nil, false, &ExitError{Code: 1, Message: fmt.Sprintf("the provided path to the OSL includes is not valid: %s", *includePathFlag)}
	}

	var libraries []string
	for _, lib := range strings.Split(*librariesFlag, ",") {
		if lib = strings.TrimSpace(lib); lib != "" {
			libraries = append(libraries, lib)
		}
	}

	config, err := app.NewConfig(app.Config{
		OutputPath:    *outputPathFlag,
		CompilerPath:  *compilerPathFlag,
		IncludePath:   *includePathFlag,
		LibrariesPath: *librariesPathFlag,
		Libraries:     libraries,
		Prefix:        *prefixFlag,
		LogLevel:      logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 1, Message: err.Error()}
	}

	return config, false, nil
}
