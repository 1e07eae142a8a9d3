package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert markdown files to HTML")
	fmt.Fprintln(w, "  watch      Convert a file again each time it is saved")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdpreview help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory")
	fmt.Fprintln(w)
	printSharedFlags(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview watch <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a markdown file, then again each time it is saved.")
	fmt.Fprintln(w, "Stops on Ctrl+C.")
	fmt.Fprintln(w)
	printSharedFlags(w)
}

func printSharedFlags(w io.Writer) {
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "      --preview             Write to a stable file in the temp directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Renderer:")
	fmt.Fprintln(w, "  -p, --parser <name>       builtin, github, or a markdownBinaryMap name")
	fmt.Fprintln(w, "      --github-mode <s>     GitHub API mode: gfm, markdown")
	fmt.Fprintln(w, "  -t, --timeout <d>         Timeout per file (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Paths:")
	fmt.Fprintln(w, "      --images <mode>       absolute, relative, base64, none")
	fmt.Fprintln(w, "      --files <mode>        absolute, relative, none")
	fmt.Fprintln(w, "      --base-path <dir>     Directory references resolve against")
	fmt.Fprintln(w, "      --destination <path>  File relative paths are computed from")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Content:")
	fmt.Fprintln(w, "      --critic <mode>       CriticMarkup: accept, reject, none")
	fmt.Fprintln(w, "      --strip-front-matter  Remove YAML front matter, use its title and meta")
	fmt.Fprintln(w, "      --header-ids          Add ids to headers without one")
	fmt.Fprintln(w, "      --simple              Bare HTML: no ids, classes, styles, comments, page")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "      --css <s>             default, URL, file, or style name (repeatable)")
	fmt.Fprintln(w, "      --js <s>              Script path or URL (repeatable)")
	fmt.Fprintln(w, "      --template <path>     HTML file with {{ HEAD }} and {{ BODY }}")
	fmt.Fprintln(w, "      --style-dir <dir>     Directory of <name>.css stylesheets")
	fmt.Fprintln(w, "      --css-overrides       Inline <document>.css when it exists")
	fmt.Fprintln(w, "      --no-style            No stylesheets")
	fmt.Fprintln(w, "      --mathjax             Load MathJax for TeX math")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDPREVIEW_CONFIG, MDPREVIEW_PARSER, MDPREVIEW_GITHUB_TOKEN,")
	fmt.Fprintln(w, "  MDPREVIEW_OUTPUT_DIR, MDPREVIEW_TIMEOUT, MDPREVIEW_WORKERS")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdpreview version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdpreview help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
