package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"evalgo.org/vcfcompat/models"
)

const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorMagenta = "\033[35m"
	colorWhite   = "\033[37m"
)

// Printer renders inventories and reports as console tables.
type Printer struct {
	w     io.Writer
	color bool
}

// PrinterOption configures a Printer.
type PrinterOption func(*Printer)

// WithColor enables ANSI colors in the compatibility column.
func WithColor(enabled bool) PrinterOption {
	return func(p *Printer) {
		p.color = enabled
	}
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, opts ...PrinterOption) *Printer {
	p := &Printer{w: w}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SummaryRow aggregates the hosts of one model that share a CPU.
type SummaryRow struct {
	Model         string
	CPU           string
	Count         int
	Compatibility []string
	Bucket        models.Bucket
}

// Summarize groups the report's hosts per model and CPU. Rows follow the
// host order of the report; the compatibility values of a row are merged
// and sorted.
func Summarize(r *models.Report) []SummaryRow {
	type key struct{ model, cpu string }

	var rows []SummaryRow
	index := map[key]int{}
	seen := map[key]map[string]bool{}

	for _, h := range r.Hosts {
		k := key{h.Model, h.CPU}
		i, ok := index[k]
		if !ok {
			i = len(rows)
			index[k] = i
			seen[k] = map[string]bool{}
			rows = append(rows, SummaryRow{Model: h.Model, CPU: h.CPU, Bucket: h.Bucket})
		}
		rows[i].Count++

		values := h.Compatibility.Releases
		if h.Compatibility.Kind != models.KindReleases {
			values = []string{h.Compatibility.String()}
		}
		for _, v := range values {
			if !seen[k][v] {
				seen[k][v] = true
				rows[i].Compatibility = append(rows[i].Compatibility, v)
			}
		}
	}

	for i := range rows {
		sort.Strings(rows[i].Compatibility)
		if len(rows[i].Compatibility) == 0 {
			rows[i].Compatibility = []string{models.NotFoundLabel}
		}
	}
	return rows
}

// PrintModels prints the model list of an inventory followed by its totals.
func (p *Printer) PrintModels(inv models.Inventory) {
	p.title("[*] MODEL LIST")
	w := p.table()
	fmt.Fprintln(w, "#\tSERVER MODEL\tQUANTITY")
	for i, label := range inv.Models() {
		fmt.Fprintf(w, "%d\t%s\t%d\n", i+1, label, len(inv[label]))
	}
	w.Flush()

	p.title("[*] TOTAL")
	w = p.table()
	fmt.Fprintln(w, "MODELS\tHOSTS")
	fmt.Fprintf(w, "%d\t%d\n", len(inv), inv.HostCount())
	w.Flush()
}

// PrintSummary prints one row per model and CPU.
func (p *Printer) PrintSummary(r *models.Report) {
	rows := Summarize(r)
	if len(rows) == 0 {
		return
	}

	p.title("[*] SUMMARY")
	w := p.table()
	fmt.Fprintln(w, "#\tSERVER MODEL\tCPU\tQUANTITY\tCOMPATIBILITY")
	for i, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			i+1, row.Model, row.CPU, row.Count, p.paint(row.Bucket, strings.Join(row.Compatibility, ", ")))
	}
	w.Flush()
}

// PrintBuckets prints the models of every non-empty bucket with their host
// counts.
func (p *Printer) PrintBuckets(r *models.Report) {
	for _, b := range models.Buckets {
		byModel := r.Buckets[b]
		if len(byModel) == 0 {
			continue
		}
		labels := make([]string, 0, len(byModel))
		for label := range byModel {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		p.title(b.Title())
		w := p.table()
		fmt.Fprintln(w, "#\tMODEL\tQUANTITY")
		for i, label := range labels {
			fmt.Fprintf(w, "%d\t%s\t%d\n", i+1, label, len(byModel[label]))
		}
		w.Flush()
	}
}

// PrintTotals prints the number of hosts per bucket.
func (p *Printer) PrintTotals(r *models.Report) {
	p.title("[*] TOTAL SUMMARY")
	w := p.table()

	headers := make([]string, 0, len(models.Buckets))
	counts := make([]string, 0, len(models.Buckets))
	for _, b := range models.Buckets {
		header := b.Title()
		if b == models.BucketVCF9Compatible {
			header = strings.ToUpper(r.TargetRelease)
		}
		headers = append(headers, header)
		counts = append(counts, fmt.Sprint(r.Buckets.Count(b)))
	}
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	fmt.Fprintln(w, strings.Join(counts, "\t"))
	w.Flush()
}

// PrintFailures lists model groups whose catalog lookup failed.
func (p *Printer) PrintFailures(r *models.Report) {
	if len(r.Failures) == 0 {
		return
	}
	p.title("[-] UNRESOLVED MODELS")
	w := p.table()
	fmt.Fprintln(w, "MODEL\tERROR")
	for _, f := range r.Failures {
		fmt.Fprintf(w, "%s\t%s\n", f.Model, f.Error)
	}
	w.Flush()
}

func (p *Printer) title(s string) {
	fmt.Fprintf(p.w, "\n%s\n", s)
}

func (p *Printer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
}

// paint colors s by bucket. Colored values are always in the last column
// so escape codes do not disturb the alignment.
func (p *Printer) paint(b models.Bucket, s string) string {
	if !p.color {
		return s
	}
	var c string
	switch b {
	case models.BucketVCF9Compatible:
		c = colorGreen
	case models.BucketNotFound:
		c = colorWhite
	case models.BucketNotApplied:
		c = colorYellow
	case models.BucketUnresolved:
		c = colorMagenta
	default:
		c = colorRed
	}
	return c + s + colorReset
}
