// Command sigv4sign signs an HTTP request description with AWS Signature
// Version 4, for ad hoc use from a shell or a script — the library itself
// (package sigv4) has no CLI dependency.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cmdRoot is the base command when no subcommand has been specified.
var cmdRoot = &cobra.Command{
	Use:           "sigv4sign",
	Short:         "Sign an HTTP request with AWS Signature Version 4",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func main() {
	if err := cmdRoot.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
