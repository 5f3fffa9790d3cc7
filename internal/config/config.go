package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/alnah/go-doc2xhtml/internal/fileutil"
	"github.com/alnah/go-doc2xhtml/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidKind     = errors.New("invalid document kind")
	ErrInvalidExt      = errors.New("invalid file extension")
)

// AppDirName is the directory searched under the user config directory.
const AppDirName = "go-doc2xhtml"

// Field length limits.
const (
	MaxPathLength      = 4096 // Filesystem paths
	MaxStyleLength     = 255  // Style name or path
	MaxExtensionLength = 16   // ".html", ".xhtml"
	MaxKindLength      = 16   // "UM", "FAQ"
	MaxKindLabelLength = 100  // "User's Manual"
)

// kindCodePattern matches the argument shape accepted by include directives.
var kindCodePattern = regexp.MustCompile(`^\w+$`)

// Config holds all configuration for document expansion.
type Config struct {
	Assets     AssetsConfig      `yaml:"assets"`
	Style      string            `yaml:"style"` // Tag dictionary name or path (empty = embedded default)
	Source     SourceConfig      `yaml:"source"`
	Output     OutputConfig      `yaml:"output"`
	Paragraphs ParagraphsConfig  `yaml:"paragraphs"`
	Kinds      map[string]string `yaml:"kinds"` // Kind code -> header label
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// SourceConfig defines how source documents are named.
type SourceConfig struct {
	Extension string `yaml:"extension"` // Default ".html"
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Extension  string `yaml:"extension"`  // Default ".html"
	DefaultDir string `yaml:"defaultDir"` // Used when no output directory is given
}

// ParagraphsConfig defines paragraph inference options.
type ParagraphsConfig struct {
	Enabled bool `yaml:"enabled"` // Initial state in every file (default true)
}

// Validate checks field lengths, extensions, and kind labels.
// Called automatically by LoadConfig, but available for library users
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("style", c.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	if err := validateExtension("source.extension", c.Source.Extension); err != nil {
		return err
	}
	if err := validateExtension("output.extension", c.Output.Extension); err != nil {
		return err
	}

	codes := make([]string, 0, len(c.Kinds))
	for code := range c.Kinds {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		label := c.Kinds[code]
		if !kindCodePattern.MatchString(code) {
			return fmt.Errorf("%w: kinds.%s: code must be letters, digits, or underscore", ErrInvalidKind, code)
		}
		if err := validateFieldLength("kinds."+code, code, MaxKindLength); err != nil {
			return err
		}
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("%w: kinds.%s: label cannot be empty", ErrInvalidKind, code)
		}
		if err := validateFieldLength("kinds."+code, label, MaxKindLabelLength); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateExtension accepts an empty value (use default) or a dotted suffix.
func validateExtension(fieldName, ext string) error {
	if ext == "" {
		return nil
	}
	if err := validateFieldLength(fieldName, ext, MaxExtensionLength); err != nil {
		return err
	}
	if err := fileutil.ValidateExtension(ext); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidExt, fieldName, err)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// embedded assets, ".html" on both sides, paragraph inference on.
func DefaultConfig() *Config {
	return &Config{
		Assets:     AssetsConfig{BasePath: ""},
		Style:      "",
		Source:     SourceConfig{Extension: ".html"},
		Output:     OutputConfig{Extension: ".html"},
		Paragraphs: ParagraphsConfig{Enabled: true},
		Kinds: map[string]string{
			"UM":  "User's Manual",
			"FAQ": "FAQ",
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeFile(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-doc2xhtml/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
