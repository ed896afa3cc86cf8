package app

import "errors"

// Config holds everything an App instance needs to run a batch build.
type Config struct {
	OutputPath    string   // generated sources, artifacts and the log
	CompilerPath  string   // external oslc executable
	IncludePath   string   // extra include dir handed to the compiler
	LibrariesPath string   // root of the node-definition libraries
	Libraries     []string // named libraries; empty loads everything
	Prefix        string   // optional public-name prefix

	LogLevel string
}

// NewConfig validates the required fields and returns the configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.OutputPath == "" {
		return nil, errors.New("OutputPath is a required configuration field and cannot be empty")
	}
	if cfg.CompilerPath == "" {
		return nil, errors.New("CompilerPath is a required configuration field and cannot be empty")
	}
	if cfg.IncludePath == "" {
		return nil, errors.New("IncludePath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
