package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// assetFlags holds asset-related flags.
type assetFlags struct {
	style     string // Name or path for the tag dictionary stylesheet
	assetPath string // Override asset directory
}

// extensionFlags holds source and output extension overrides.
type extensionFlags struct {
	source string
	output string
}

// expandFlags holds all flags for the expand command.
type expandFlags struct {
	common     commonFlags
	assets     assetFlags
	extensions extensionFlags
	noPara     bool
	watch      bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-file progress and totals")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "tag dictionary style name or CSS file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addExtensionFlags adds extension flags to a FlagSet.
func addExtensionFlags(fs *flag.FlagSet, f *extensionFlags) {
	fs.StringVar(&f.source, "source-ext", "", "source file extension (default .html)")
	fs.StringVar(&f.output, "output-ext", "", "output file extension (default .html)")
}

// newExpandFlagSet registers every expand flag into f.
// Shared by parsing and completion generation.
func newExpandFlagSet(f *expandFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("expand", flag.ContinueOnError)

	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	addExtensionFlags(fs, &f.extensions)
	fs.BoolVar(&f.noPara, "no-para", false, "start every page with paragraph inference off")
	fs.BoolVarP(&f.watch, "watch", "w", false, "re-expand when the input directory changes")

	return fs
}

// parseExpandFlags parses expand command flags and returns positional args.
// Parse errors are returned, not printed.
func parseExpandFlags(args []string) (*expandFlags, []string, error) {
	f := &expandFlags{}
	fs := newExpandFlagSet(f)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
