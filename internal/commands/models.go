package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"evalgo.org/vcfcompat/internal/report"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the server models reported by Aria Operations",
	Long: `Read the ESXi hosts from Aria Operations and list the server models
with their host counts. The compatibility catalog is not queried.`,
	RunE: runModels,
}

func init() {
	addAriaFlags(modelsCmd)
	modelsCmd.Flags().String("format", "table", "output format (table, json, yaml)")
}

func runModels(cmd *cobra.Command, args []string) error {
	applyAriaFlags(cmd)

	name, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(name)
	if err != nil {
		return err
	}

	inv, err := collectInventory(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case report.FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(inv)
	case report.FormatYAML:
		data, err := yaml.Marshal(inv)
		if err != nil {
			return fmt.Errorf("failed to encode inventory: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	report.NewPrinter(out).PrintModels(inv)
	return nil
}
