package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docrun-dev/docrun/internal/adapter"
	"github.com/docrun-dev/docrun/internal/controller"
	m "github.com/docrun-dev/docrun/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View a previously saved run summary",
		Long:  "Display the run summary persisted by 'run --save' from the output directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := adapter.NewLocalReportStore()

			summary, err := store.LoadSummary(m.Path(viper.GetString(outputFlagName)))
			if err != nil {
				return err
			}

			var ui controller.UI
			if controller.IsTTY(os.Stdout) {
				ui = controller.NewTUI(os.Stdout)
			} else {
				ui = controller.NewSimpleUI(cmd)
			}

			return ui.DisplaySummary(summary)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
