package cmd

import (
	"github.com/spf13/cobra"

	"github.com/docrun-dev/docrun/internal/adapter"
	"github.com/docrun-dev/docrun/internal/controller"
	"github.com/docrun-dev/docrun/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [targets...]",
		Short: "List files and embedded example counts",
		Long:  listLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := parseTargets(args)
			if err != nil {
				return err
			}

			groups, err := domain.Discover(targets, func() adapter.SourceLoader {
				return adapter.NewLocalSourceLoader()
			})
			if err != nil {
				return err
			}

			ui := controller.NewSimpleUI(cmd)

			return ui.DisplayDiscovery(groups)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
