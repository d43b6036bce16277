// Package cmd provides the root command and CLI setup for docrun.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/docrun-dev/docrun/internal/domain"
	m "github.com/docrun-dev/docrun/internal/model"
)

// outputDirFlag is a root-level flag shared by commands that read/write run
// summaries.
var outputDirFlag string

// optionFlags is a root-level flag holding baseline comparison options.
var optionFlags []string

// verboseFlag raises the log level to debug.
var verboseFlag bool

const targetGrammarHelp = `Each target is one of:
  - dir/             run every matching file under the directory tree
  - dir/;pattern     same, with a filename filter (regular expression)
  - file.go          run all example groups embedded in the file
  - file.go::Member  run the groups of one type or function
  - file.go::Type::method   run one method's groups
  - file.go::::function     run one top-level function's groups

Files without the .go extension are scanned directly for embedded examples.`

const rootLongDescription = `Docrun extracts doctest-style examples (">>> snippet" lines with expected
output) embedded in documentation comments, executes them, and streams
test-status service messages to standard output for IDE consumption.

` + targetGrammarHelp

const runLongDescription = `Run documentation examples for the given targets, streaming service
messages to standard output.

` + targetGrammarHelp

const listLongDescription = `List files and the number of embedded example groups without running
anything.

` + targetGrammarHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docrun",
		Short: "Documentation-example test runner",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func init() {
	configureRootFlags(rootCmd)
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"directory for persisted run summaries",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringSliceVar(&optionFlags, optionsFlagName, viper.GetStringSlice(optionsConfigKey),
		"baseline comparison options (ellipsis, normalize-whitespace, ignore-fault-detail, skip)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(optionsFlagName), optionsConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", viper.GetBool(logVerboseKey), "enable debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("verbose"), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// parseTargets interprets the positional arguments, skipping empty ones.
func parseTargets(args []string) ([]m.Target, error) {
	targets := make([]m.Target, 0, len(args))

	for _, arg := range args {
		if strings.TrimSpace(arg) == "" {
			continue
		}

		t, err := domain.ParseTarget(arg)
		if err != nil {
			return nil, err
		}

		targets = append(targets, t)
	}

	return targets, nil
}

// parseOptions resolves baseline option names to a flag set.
func parseOptions(names []string) (m.FlagSet, error) {
	var flags m.FlagSet

	for _, name := range names {
		f, ok := m.ParseFlag(strings.TrimPrefix(strings.TrimSpace(name), "+"))
		if !ok {
			return 0, fmt.Errorf("unknown comparison option %q", name)
		}

		flags |= f
	}

	return flags, nil
}
