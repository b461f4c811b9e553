package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: scribe <command> [flags] [file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  export      Export markdown to a paginated PDF")
	fmt.Fprintln(w, "  preview     Render the live HTML preview")
	fmt.Fprintln(w, "  check       Check grammar and spelling")
	fmt.Fprintln(w, "  cheatsheet  Show the markdown quick reference")
	fmt.Fprintln(w, "  config      Print the effective configuration as YAML")
	fmt.Fprintln(w, "  doctor      Check system configuration for PDF export")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input is read from [file], or from stdin when it is omitted or \"-\".")
	fmt.Fprintln(w, "Run 'scribe help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --log-level <s>       Console log level: none, normal, debug")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: scribe export [file] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export markdown to a paginated PDF (US Letter by default).")
	fmt.Fprintln(w, "An existing output file is overwritten.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF path (default output.pdf)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --rich-text           Keep bold, italic and inline code")
	fmt.Fprintln(w, "      --html                Write HTML alongside PDF")
	fmt.Fprintln(w, "      --html-only           Write HTML only, skip PDF")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: scribe preview [file] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render the live preview as a standalone HTML page. Relative")
	fmt.Fprintln(w, "images and links resolve against the input file's directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Write the page to a file instead of stdout")
	fmt.Fprintln(w, "      --fragment            Print the bare preview fragment")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: scribe check [file] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check grammar and spelling with a LanguageTool server.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Grammar:")
	fmt.Fprintln(w, "      --grammar-endpoint <url>  Server URL (default http://localhost:8081)")
	fmt.Fprintln(w, "  -l, --language <code>         Language code (default en-US)")
	fmt.Fprintln(w, "      --json                    Print findings as JSON")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printCheatsheetUsage prints usage for the cheatsheet command.
func printCheatsheetUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: scribe cheatsheet [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the markdown quick reference.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Export the cheat sheet as a PDF")
	fmt.Fprintln(w, "      --markdown            Print the cheat sheet as markdown")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: scribe config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration (file, then SCRIBE_* variables) as YAML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --defaults            Print built-in defaults only")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// commandUsage maps command names to their usage printers.
var commandUsage = map[string]func(io.Writer){
	"export":     printExportUsage,
	"preview":    printPreviewUsage,
	"check":      printCheckUsage,
	"cheatsheet": printCheatsheetUsage,
	"config":     printConfigUsage,
	"doctor": func(w io.Writer) {
		fmt.Fprintln(w, "Usage: scribe doctor [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Check Chrome, environment, temp directory and grammar endpoint.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		fmt.Fprintln(w, "      --grammar-endpoint <url>  Server URL to validate")
		fmt.Fprintln(w, "      --json                    Print results as JSON")
		fmt.Fprintln(w)
		printCommonUsage(w)
	},
	"version": func(w io.Writer) {
		fmt.Fprintln(w, "Usage: scribe version")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show version information.")
	},
	"help": func(w io.Writer) {
		fmt.Fprintln(w, "Usage: scribe help [command]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show help for a command.")
	},
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	usage, ok := commandUsage[args[0]]
	if !ok {
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	usage(env.Stdout)
	return nil
}
