// Command modelscan finds machine-learning model directories in well-known
// cache locations and reports their source and size.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/modelscan/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
