// Command tetrastack launches the TETRA air-interface stack.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/cmd"
)

// version and commit are set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	root := cmd.NewCommand(version, commit)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
