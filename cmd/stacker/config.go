package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stacker/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration stacker would use, as YAML, and where it was
loaded from. Use --defaults to print the built-in file, a good starting
point for ~/.stacker/config.yaml.

Examples:
  stacker config
  stacker config --defaults > ~/.stacker/config.yaml`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	data, err := config.Marshal(appConfig)
	if err != nil {
		return err
	}
	fmt.Printf("# source: %s\n", configSource)
	_, err = os.Stdout.Write(data)
	return err
}
