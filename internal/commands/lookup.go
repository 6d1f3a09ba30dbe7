package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"evalgo.org/vcfcompat/internal/compat"
	"evalgo.org/vcfcompat/models"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <model label> [cpu...]",
	Short: "Look one server model up in the compatibility catalog",
	Long: `Resolve a single server model label, as Aria Operations reports it,
against the compatibility catalog. Aria Operations is not contacted.

CPU descriptions are optional; each one stands for a host of the model.`,
	Example: `  vcfcompat lookup "Dell Inc. PowerEdge R750" "Intel(R) Xeon(R) Gold 6338 CPU @ 2.00GHz"
  vcfcompat lookup "HPE ProLiant DL380 Gen10" --target "ESXi 8.0 U3"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().String("target", "", "release required for compatibility (default: ESXi 9.0)")
}

func runLookup(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("target") {
		cfg.Check.TargetRelease, _ = cmd.Flags().GetString("target")
	}

	label := args[0]
	cpus := args[1:]
	if len(cpus) == 0 {
		cpus = []string{models.Unknown}
	}
	hosts := make([]models.HostRecord, 0, len(cpus))
	for i, cpu := range cpus {
		hosts = append(hosts, models.HostRecord{
			Hostname: fmt.Sprintf("host%d", i+1),
			Vendor:   label,
			Model:    label,
			CPU:      cpu,
		})
	}

	cat, err := newCatalogClient()
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}
	result, lookupErr := compat.NewResolver(cat).ResolveGroup(cmd.Context(), label, hosts)

	id := compat.SplitIdentity(label)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Model label:\t%s\n", label)
	fmt.Fprintf(w, "Vendor:\t%s\n", id.Vendor)
	fmt.Fprintf(w, "Keyword:\t%s\n", id.Model)
	fmt.Fprintf(w, "CPU families:\t%s\n", strings.Join(compat.GroupFamilies(hosts), ", "))
	fmt.Fprintf(w, "Compatibility:\t%s\n", result.String())
	fmt.Fprintf(w, "Bucket:\t%s\n", compat.Classify(result, cfg.Check.TargetRelease))
	w.Flush()

	return lookupErr
}
