// Command thermogen generates reduced-order thermal simulation models
// from building description files.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bldgsim/thermogen/internal/cli"
	"github.com/bldgsim/thermogen/pkg/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, cli.ErrPartialExport) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run() error {
	return cli.NewRootCmd(version.GetVersion()).Execute()
}
