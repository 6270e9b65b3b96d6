package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportFormat string

// configCmd groups configuration commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Work with the configuration",
}

var configExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the effective Calaméo settings",
	Long: `Print the effective calameo section of the configuration, after
defaults and environment overrides, as JSON, XML or YAML. The XML form can
be passed back with --config.`,
	Args: cobra.NoArgs,
	RunE: runConfigExport,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configExportCmd)

	configExportCmd.Flags().StringVar(&exportFormat, "format", "yaml", "export format (json|xml|yaml)")
}

func runConfigExport(cmd *cobra.Command, args []string) error {
	settings := cfg.Calameo.Settings()

	var (
		out []byte
		err error
	)
	switch exportFormat {
	case "json":
		out, err = settings.JSON()
		out = append(out, '\n')
	case "xml":
		out, err = settings.XML()
	case "yaml":
		out, err = settings.YAML()
	default:
		return fmt.Errorf("invalid export format: %s (must be json, xml or yaml)", exportFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to export config: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}
