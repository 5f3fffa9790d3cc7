package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: doc2xhtml <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  expand      Expand a documentation directory into HTML")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'doc2xhtml help <command>' for details on a specific command.")
}

// printExpandUsage prints usage for the expand command.
func printExpandUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: doc2xhtml expand <input-dir> [output-dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Expand the contents page of input-dir, and every page it generates,")
	fmt.Fprintln(w, "into output-dir. The contents page is the file named after input-dir")
	fmt.Fprintln(w, "(manual/manual.html).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input-dir     Source directory")
	fmt.Fprintln(w, "  output-dir    Output directory (optional if config has output.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --style <s>           Tag dictionary style name or CSS file path")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles/ and templates/ directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Expansion:")
	fmt.Fprintln(w, "      --source-ext <ext>    Source file extension (default .html)")
	fmt.Fprintln(w, "      --output-ext <ext>    Output file extension (default .html)")
	fmt.Fprintln(w, "      --no-para             Start every page with paragraph inference off")
	fmt.Fprintln(w, "  -w, --watch               Re-expand when the input directory changes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-file progress and totals")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DOC2XHTML_CONFIG, DOC2XHTML_STYLE, DOC2XHTML_ASSET_PATH,")
	fmt.Fprintln(w, "  DOC2XHTML_OUTPUT_DIR, DOC2XHTML_SOURCE_EXT, DOC2XHTML_OUTPUT_EXT")
	fmt.Fprintln(w, "  A .env file in the working directory is read first.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "expand":
		printExpandUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: doc2xhtml version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: doc2xhtml help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	case "completion":
		printCompletionUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
