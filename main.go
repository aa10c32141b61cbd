// dirdiff compares two point-in-time disk-usage reports and lists the
// directories that grew between them.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/dirdiff/internal/cli"
)

// version is set at build time via -ldflags.
//
//nolint:gochecknoglobals // Build-time variable
var version = "dev"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
