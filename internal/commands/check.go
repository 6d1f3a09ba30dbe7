package commands

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"evalgo.org/vcfcompat/internal/compat"
	"evalgo.org/vcfcompat/internal/report"
)

var (
	// Check flags
	checkVerbose     bool
	checkReportPath  string
	checkMetricsPath string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Classify every ESXi host by VCF 9 compatibility",
	Long: `Read the ESXi hosts from Aria Operations, look each server model up in
the Broadcom Compatibility Guide and classify the hosts.

The summary is printed to stdout and every host is exported to CSV.`,
	Example: `  vcfcompat check -H aria.example.com -u admin -d LOCAL
  vcfcompat check -H aria.example.com -u admin -p secret --no-verify-ssl -v
  vcfcompat check --format json --report report.json --metrics-file /var/lib/node_exporter/vcfcompat.prom`,
	RunE: runCheck,
}

func init() {
	addAriaFlags(checkCmd)
	f := checkCmd.Flags()
	f.BoolVarP(&checkVerbose, "verbose", "v", false, "print model list and per-bucket tables")
	f.StringP("output", "o", "", "CSV export path (default: server_export.csv)")
	f.String("target", "", "release required for compatibility (default: ESXi 9.0)")
	f.String("format", "", "console output format (table, json, yaml)")
	f.Int("concurrency", 0, "model groups resolved in parallel")
	f.StringVar(&checkReportPath, "report", "", "write the full report to a .json or .yaml file")
	f.StringVar(&checkMetricsPath, "metrics-file", "", "write a Prometheus textfile with the bucket counts")
}

func applyCheckFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	if f.Changed("output") {
		cfg.Check.Output, _ = f.GetString("output")
	}
	if f.Changed("target") {
		cfg.Check.TargetRelease, _ = f.GetString("target")
	}
	if f.Changed("format") {
		cfg.Check.Format, _ = f.GetString("format")
	}
	if f.Changed("concurrency") {
		cfg.Catalog.Concurrency, _ = f.GetInt("concurrency")
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	applyAriaFlags(cmd)
	applyCheckFlags(cmd)

	format, err := report.ParseFormat(cfg.Check.Format)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	printer := report.NewPrinter(out, report.WithColor(colorEnabled(out)))

	inv, err := collectInventory(ctx)
	if err != nil {
		return err
	}
	if checkVerbose && format == report.FormatTable {
		printer.PrintModels(inv)
	}

	cat, err := newCatalogClient()
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}
	checker := compat.NewChecker(cat,
		compat.WithTargetRelease(cfg.Check.TargetRelease),
		compat.WithConcurrency(cfg.Catalog.Concurrency),
	)

	rep, err := checker.Run(ctx, inv)
	for _, e := range multierr.Errors(err) {
		log.WithError(e).Warn("model group left unresolved")
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if format == report.FormatTable {
		printer.PrintSummary(rep)
		if checkVerbose {
			printer.PrintBuckets(rep)
		}
		printer.PrintFailures(rep)
		printer.PrintTotals(rep)
	} else if err := report.Write(out, rep, format); err != nil {
		return err
	}

	if cfg.Check.Output != "" {
		if err := report.ExportCSV(cfg.Check.Output, rep.Hosts); err != nil {
			return err
		}
		log.WithField("path", cfg.Check.Output).Info("data exported")
		if format == report.FormatTable {
			fmt.Fprintf(out, "\n[+] Data exported to %s\n", cfg.Check.Output)
		}
	}

	if checkReportPath != "" {
		if err := report.WriteFile(checkReportPath, rep); err != nil {
			return err
		}
		log.WithField("path", checkReportPath).Info("report written")
	}

	if checkMetricsPath != "" {
		if err := report.WriteMetrics(checkMetricsPath, rep); err != nil {
			return err
		}
		log.WithField("path", checkMetricsPath).Info("metrics written")
	}

	return nil
}
