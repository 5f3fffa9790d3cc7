package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	doc2xhtml "github.com/alnah/go-doc2xhtml"
	"github.com/alnah/go-doc2xhtml/internal/config"
	"github.com/alnah/go-doc2xhtml/internal/hints"
)

// timeRounding is the precision of printed durations.
const timeRounding = time.Millisecond

// Sentinel errors for the expand command.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrNoOutputDir = errors.New("no output directory specified")
)

// runExpand parses flags, resolves configuration, and runs one expansion,
// or keeps expanding on changes with --watch.
func runExpand(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseExpandFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printExpandUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v (see 'doc2xhtml help expand')", ErrUsage, err)
	}

	logger := env.newLogger(flags.common.verbose, flags.common.quiet)

	if err := loadDotEnv(dotEnvFile); err != nil {
		logger.Warn("ignoring unreadable .env file", "error", err)
	}
	warnUnknownEnvVars(logger)

	cfg, err := resolveConfig(flags, loadEnvConfig())
	if err != nil {
		return err
	}

	inDir, outDir, err := resolveDirs(positional, cfg)
	if err != nil {
		return err
	}

	exp, err := doc2xhtml.NewExpander(expanderOptions(cfg, logger)...)
	if err != nil {
		return withHint(err, cfg)
	}

	if flags.watch {
		return runWatch(ctx, exp, inDir, outDir, env, logger)
	}

	result, err := exp.Expand(ctx, inDir, outDir)
	if err != nil {
		return withHint(err, cfg)
	}
	printResult(env, result, flags.common)
	return nil
}

// resolveConfig builds the effective configuration.
// Precedence: CLI flags > environment variables > config file > defaults.
func resolveConfig(flags *expandFlags, env *envConfig) (*config.Config, error) {
	name := flags.common.config
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, withHint(fmt.Errorf("loading config: %w", err), nil)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags over cfg.
func mergeFlags(flags *expandFlags, cfg *config.Config) {
	if flags.assets.style != "" {
		cfg.Style = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.extensions.source != "" {
		cfg.Source.Extension = flags.extensions.source
	}
	if flags.extensions.output != "" {
		cfg.Output.Extension = flags.extensions.output
	}
	if flags.noPara {
		cfg.Paragraphs.Enabled = false
	}
}

// resolveDirs returns the input and output directories from positional
// arguments, falling back to output.defaultDir for the output.
func resolveDirs(args []string, cfg *config.Config) (inDir, outDir string, err error) {
	switch len(args) {
	case 0:
		return "", "", fmt.Errorf("%w: missing input directory", ErrUsage)
	case 1:
		if cfg.Output.DefaultDir == "" {
			return "", "", fmt.Errorf("%w: pass it as the second argument or set output.defaultDir", ErrNoOutputDir)
		}
		return args[0], cfg.Output.DefaultDir, nil
	case 2:
		return args[0], args[1], nil
	default:
		return "", "", fmt.Errorf("%w: too many arguments: %s", ErrUsage, strings.Join(args[2:], " "))
	}
}

// expanderOptions converts cfg into library options.
func expanderOptions(cfg *config.Config, logger *slog.Logger) []doc2xhtml.Option {
	opts := []doc2xhtml.Option{
		doc2xhtml.WithExtensions(cfg.Source.Extension, cfg.Output.Extension),
		doc2xhtml.WithParagraphs(cfg.Paragraphs.Enabled),
		doc2xhtml.WithKindLabels(cfg.Kinds),
		doc2xhtml.WithLogger(logger),
	}
	if cfg.Style != "" {
		opts = append(opts, doc2xhtml.WithStyle(cfg.Style))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, doc2xhtml.WithAssetPath(cfg.Assets.BasePath))
	}
	return opts
}

// withHint appends an actionable hint to err when one applies.
// The error chain is preserved for exit code mapping.
func withHint(err error, cfg *config.Config) error {
	hint := hintFor(err, cfg)
	if hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

func hintFor(err error, cfg *config.Config) string {
	var dupErr *doc2xhtml.DuplicateAnchorError
	switch {
	case errors.As(err, &dupErr):
		return hints.ForDuplicateAnchor(dupErr.ID)
	case errors.Is(err, doc2xhtml.ErrMissingInclude):
		ext := ""
		if cfg != nil {
			ext = cfg.Source.Extension
		}
		return hints.ForMissingInclude(ext)
	case errors.Is(err, doc2xhtml.ErrTOCNotFound):
		return hints.ForTOCNotFound(strings.TrimSpace(afterColon(err.Error())))
	case errors.Is(err, doc2xhtml.ErrGenerateCycle):
		return hints.ForGenerateCycle()
	case errors.Is(err, doc2xhtml.ErrSameDirectory), errors.Is(err, doc2xhtml.ErrSameFile):
		return hints.ForSameDirectory()
	case errors.Is(err, doc2xhtml.ErrStyleNotFound):
		return hints.ForStyleNotFound(doc2xhtml.AvailableStyles())
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(searchedPaths(err))
	case strings.Contains(err.Error(), "creating output directory"):
		return hints.ForOutputDirectory()
	}
	return ""
}

// hintedError carries a hint suffix while unwrapping to the original error.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }
func (e *hintedError) Unwrap() error { return e.err }

// searchedPaths extracts the locations listed by a config not found error.
func searchedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}

// afterColon returns the text after the last ": " in s.
func afterColon(s string) string {
	if i := strings.LastIndex(s, ": "); i >= 0 {
		return s[i+2:]
	}
	return s
}

// printResult reports a finished run: totals in verbose mode, the output
// file count otherwise, nothing when quiet.
func printResult(env *Environment, result *doc2xhtml.Result, flags commonFlags) {
	if result == nil || (flags.quiet && !flags.verbose) {
		return
	}
	if flags.verbose {
		for _, f := range result.Files {
			fmt.Fprintf(env.Stdout, "  %s\n", f)
		}
		fmt.Fprintf(env.Stdout, "Expanded %d file(s): %d heading(s), %d anchor(s) in %s\n",
			len(result.Files), result.Headings, result.Anchors, result.Duration.Round(timeRounding))
		return
	}
	fmt.Fprintf(env.Stdout, "Expanded %d file(s)\n", len(result.Files))
}
