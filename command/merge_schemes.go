package command

import (
	"path/filepath"

	"github.com/ringly/ringlytools/ios"
	"github.com/spf13/cobra"
)

var (
	DefaultAppsPath = filepath.Join("Ringly", "Ringly", ios.AppsPlistName)
	DefaultInfoPath = filepath.Join("Ringly", "Ringly", ios.InfoPlistName)
)

// NewMergeSchemes returns the command which acts
// as the entrypoint for `merge-schemes`.
func NewMergeSchemes() *cobra.Command {
	var (
		appsPath string
		infoPath string
		cmd      = &cobra.Command{
			Use:   "merge-schemes",
			Short: "Write the schemes of supported apps to LSApplicationQueriesSchemes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return ios.MergeQueriesSchemes(cmd.Context(), appsPath, infoPath)
			},
		}
	)

	cmd.Flags().StringVar(&appsPath, "registry", DefaultAppsPath, "Path to the Apps.plist to read schemes from.")
	cmd.Flags().StringVar(&infoPath, "info", DefaultInfoPath, "Path to the Info.plist to write schemes to.")

	return cmd
}
