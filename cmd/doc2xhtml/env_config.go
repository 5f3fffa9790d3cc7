package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-doc2xhtml/internal/config"
)

// envPrefix is shared by every recognized environment variable.
const envPrefix = "DOC2XHTML_"

// dotEnvFile is read from the working directory before the environment.
const dotEnvFile = ".env"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // DOC2XHTML_CONFIG: config file name or path
	Style      string // DOC2XHTML_STYLE: style name or CSS path
	AssetPath  string // DOC2XHTML_ASSET_PATH: custom asset directory
	OutputDir  string // DOC2XHTML_OUTPUT_DIR: default output directory
	SourceExt  string // DOC2XHTML_SOURCE_EXT: source extension
	OutputExt  string // DOC2XHTML_OUTPUT_EXT: output extension
}

// knownEnvVars lists valid DOC2XHTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOC2XHTML_CONFIG":     true,
	"DOC2XHTML_STYLE":      true,
	"DOC2XHTML_ASSET_PATH": true,
	"DOC2XHTML_OUTPUT_DIR": true,
	"DOC2XHTML_SOURCE_EXT": true,
	"DOC2XHTML_OUTPUT_EXT": true,
}

// loadDotEnv reads variables from path into the process environment.
// Variables already set are kept. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("DOC2XHTML_CONFIG"),
		Style:      os.Getenv("DOC2XHTML_STYLE"),
		AssetPath:  os.Getenv("DOC2XHTML_ASSET_PATH"),
		OutputDir:  os.Getenv("DOC2XHTML_OUTPUT_DIR"),
		SourceExt:  os.Getenv("DOC2XHTML_SOURCE_EXT"),
		OutputExt:  os.Getenv("DOC2XHTML_OUTPUT_EXT"),
	}
}

// warnUnknownEnvVars logs a warning for each unrecognized DOC2XHTML_* variable.
func warnUnknownEnvVars(logger *slog.Logger) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig overrides config file values with set environment variables.
// CLI flags are applied afterwards by mergeFlags.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.SourceExt != "" {
		cfg.Source.Extension = env.SourceExt
	}
	if env.OutputExt != "" {
		cfg.Output.Extension = env.OutputExt
	}
}
