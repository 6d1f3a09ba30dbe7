package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"evalgo.org/vcfcompat/internal/compat"
	"evalgo.org/vcfcompat/internal/report"
	"evalgo.org/vcfcompat/models"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Print the summary of a previous CSV export",
	Long: `Read a CSV export written by "vcfcompat check" and print its summary
and totals again, optionally against another target release. Neither Aria
Operations nor the catalog is contacted.`,
	Example: `  vcfcompat summarize server_export.csv
  vcfcompat summarize server_export.csv --target "ESXi 8.0 U3" -v`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().String("target", "", "release required for compatibility (default: ESXi 9.0)")
	summarizeCmd.Flags().BoolP("verbose", "v", false, "print per-bucket tables")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("target") {
		cfg.Check.TargetRelease, _ = cmd.Flags().GetString("target")
	}
	path := cfg.Check.Output
	if len(args) == 1 {
		path = args[0]
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	rows, err := report.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	rep := models.NewReport(cfg.Check.TargetRelease)
	for _, row := range rows {
		rep.Hosts = append(rep.Hosts, models.ClassifiedHost{
			HostRecord:    models.HostRecord{Hostname: row.Hostname, Model: row.Model, CPU: row.CPU},
			Compatibility: row.Compatibility,
			Bucket:        compat.Classify(row.Compatibility, cfg.Check.TargetRelease),
		})
	}
	rep.Buckets = compat.Aggregate(rep.Hosts)

	out := cmd.OutOrStdout()
	printer := report.NewPrinter(out, report.WithColor(colorEnabled(out)))
	printer.PrintSummary(rep)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		printer.PrintBuckets(rep)
	}
	printer.PrintTotals(rep)
	return nil
}
