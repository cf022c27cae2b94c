package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCommand builds the ductnet command tree. Logs go to the command's
// error stream; --verbose switches them to debug level.
func NewRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "ductnet",
		Short:        "ductnet routes and sizes duct networks through building grids",
		Long:         `ductnet connects a supply source to every ventilated space of a building grid, sizes the ducts for the required air flow and searches heuristic weights for the network with the least duct surface.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("ductnet %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRouteCmd())
	root.AddCommand(newGraphCmd())

	return root
}

// Execute runs the CLI with ctx; cancelling ctx stops a running sweep.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
