// Package commands implements the portalctl command line.
package commands

import (
	"github.com/spf13/cobra"

	"suviet_server/config"
)

// rootOptions are shared by every subcommand.
type rootOptions struct {
	APIBaseURL string
	StoreDir   string
}

// New builds the portalctl root command.
func New() *cobra.Command {
	popupConfig := config.GetPopupConfig()
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "portalctl",
		Short: "Inspect the history portal the way a visitor's browser sees it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.APIBaseURL, "api", popupConfig.APIBaseURL, "portal API base URL")
	cmd.PersistentFlags().StringVar(&opts.StoreDir, "store", popupConfig.StoreDir, "directory of the local visitor store")

	addPopup(cmd, opts, popupConfig)
	addTimeline(cmd, opts, popupConfig)
	return cmd
}
