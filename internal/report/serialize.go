// Package report renders compatibility reports: console tables, the host
// CSV export, JSON and YAML documents, and a Prometheus textfile.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"evalgo.org/vcfcompat/models"
)

// Format is an output format for reports.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat converts a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (use table, json or yaml)", s)
}

// FormatFromPath picks the document format from a file extension. Anything
// other than .yaml or .yml is written as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Write renders r to w. The table format prints the summary, any unresolved
// models and the totals.
func Write(w io.Writer, r *models.Report, format Format, opts ...PrinterOption) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()
	case FormatTable, "":
		p := NewPrinter(w, opts...)
		p.PrintSummary(r)
		p.PrintFailures(r)
		p.PrintTotals(r)
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

// WriteFile writes r to path as JSON or YAML depending on the extension.
func WriteFile(path string, r *models.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Write(f, r, FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
