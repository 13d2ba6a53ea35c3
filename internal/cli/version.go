package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/reoring/typeschema/internal/cli.Version=...".
var Version = "dev"

func newVersionCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of typeschema",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintln(e.out, "Version: "+Version)
			fmt.Fprintln(e.out, "Go Version: "+runtime.Version())
		},
	}
}
