package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docrun-dev/docrun/internal/adapter"
	"github.com/docrun-dev/docrun/internal/domain"
	m "github.com/docrun-dev/docrun/internal/model"
)

var runSaveFlag bool

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [targets...]",
		Short: "Run documentation examples",
		Long:  runLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			baseline, err := parseOptions(viper.GetStringSlice(optionsConfigKey))
			if err != nil {
				return err
			}

			targets, err := parseTargets(args)
			if err != nil {
				return err
			}

			// A fresh loader per invocation scopes module-name uniqueness
			// to exactly this run.
			loader := adapter.NewLocalSourceLoader()
			engine := domain.NewEngine(adapter.NewYaegiEvaluator())
			driver := domain.NewDriver(loader, engine, baseline)

			groups, err := driver.Gather(targets)
			if err != nil {
				return err
			}

			teamcity := adapter.NewTeamCitySink(cmd.OutOrStdout())
			sink := domain.EventSink(teamcity)

			save := viper.GetBool(saveConfigKey)

			var summarySink *domain.SummarySink
			if save {
				summarySink = domain.NewSummarySink()
				sink = domain.NewMultiSink(teamcity, summarySink)
			}

			if err := driver.Run(groups, sink); err != nil {
				return err
			}

			if save {
				store := adapter.NewLocalReportStore()
				return store.SaveSummary(m.Path(viper.GetString(outputFlagName)), summarySink.Summary())
			}

			return nil
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&runSaveFlag, saveFlagName, viper.GetBool(saveConfigKey), "also persist a YAML run summary to the output directory")
	bindFlagToConfig(cmd.Flags().Lookup(saveFlagName), saveConfigKey)
}
