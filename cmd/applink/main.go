// Command applink resolves recipe app links against the bundled dataset.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/applink/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
