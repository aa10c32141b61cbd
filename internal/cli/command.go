package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// options carries the parsed command-line configuration.
type options struct {
	// Older is the path of the older report file.
	Older string
	// Newer is the path of the newer report file.
	Newer string
	// Scan is a directory to scan in place of the newer report.
	Scan string
	// Write is a file to save the scanned tree to as a report.
	Write string
	// Top limits the number of displayed entries (0=all).
	Top int
	// Output represents output format (table or json).
	Output string
	// MinGrowth hides entries that grew by fewer bytes.
	MinGrowth uint64
	// Workers is the number of concurrent diff workers (0=auto).
	Workers int
	// Depth is the maximum scan depth (0=unlimited).
	Depth int
	// Excludes contains regex patterns to exclude while scanning.
	Excludes []string
	// Debug indicates whether debug output is enabled.
	Debug bool
	// Version indicates whether to show version and exit.
	Version bool
}

func help() {
	//nolint:forbidigo // Help output to console
	fmt.Println(heredoc.Doc(`
		dirdiff compares two disk-usage reports and lists the directories that grew.

		Usage:

			dirdiff [flags] <older-report> <newer-report>
			dirdiff --scan DIR --write FILE [flags]
			dirdiff --scan DIR [flags] <older-report>

		Positional Arguments:
		  older-report           Report file for the earlier point in time.
		  newer-report           Report file for the later point in time.

		Reports are plain text with one directory per line, e.g.:

		  C:\Users\me\Documents [3.2MB]

		Lines not matching this shape are ignored. Size units are decimal
		(KB = 1000 bytes). With --scan, the newer snapshot is taken from a
		live directory tree instead of a report file; --write saves it in
		report format for later comparisons.

		Flags:
	`))
	pflag.PrintDefaults()
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	var (
		opts         options
		minGrowthStr string
	)

	allowedOutputs := []string{"table", "json"}

	pflag.StringVarP(&opts.Scan, "scan", "s", "", "Scan a directory instead of reading the newer report")
	pflag.StringVarP(&opts.Write, "write", "w", "", "Save the scanned tree as a report file")
	pflag.IntVarP(&opts.Top, "top", "t", 20, "Number of entries to display (0=all)")
	pflag.StringVarP(&opts.Output, "output", "o", "table", "Output format: json or table")
	pflag.StringVar(&minGrowthStr, "min-growth", "0KB", "Hide entries that grew less than this (e.g. 1MB)")
	pflag.IntVar(&opts.Workers, "workers", 0, "Concurrent diff workers (0=auto)")
	pflag.IntVarP(&opts.Depth, "depth", "d", 0, "Maximum scan depth (0=unlimited)")
	pflag.StringSliceVarP(&opts.Excludes, "exclude", "e", nil, "Regex patterns to exclude while scanning")
	pflag.BoolVar(&opts.Debug, "debug", false, "Enable debug output")
	pflag.BoolVarP(&opts.Version, "version", "v", false, "Show version and exit")

	pflag.CommandLine.SortFlags = false
	pflag.Usage = help
	pflag.Parse()

	if opts.Version {
		//nolint:forbidigo // Version output to console
		fmt.Println(c.version)

		return nil
	}

	if !slices.Contains(allowedOutputs, opts.Output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", opts.Output, allowedOutputs)
	}

	if opts.Depth < 0 {
		return errors.New("depth cannot be negative")
	}

	if opts.Top < 0 {
		return errors.New("top cannot be negative")
	}

	if opts.Write != "" && opts.Scan == "" {
		return errors.New("--write requires --scan")
	}

	// Parse minGrowth string to bytes
	if minGrowthStr != "" {
		growthBytes, err := humanize.ParseBytes(minGrowthStr)
		if err != nil {
			return fmt.Errorf("invalid min-growth: %w", err)
		}

		opts.MinGrowth = growthBytes
	}

	switch {
	case opts.Scan == "":
		if pflag.NArg() != 2 {
			return errors.New("expected exactly two report files: <older-report> <newer-report>")
		}

		opts.Older = pflag.Args()[0]
		opts.Newer = pflag.Args()[1]
	case pflag.NArg() > 1:
		return errors.New("with --scan, at most one report file is expected: <older-report>")
	case pflag.NArg() == 1:
		opts.Older = pflag.Args()[0]
	case opts.Write == "":
		return errors.New("with --scan, provide <older-report> to compare against, --write to save, or both")
	}

	return logic(opts)
}
