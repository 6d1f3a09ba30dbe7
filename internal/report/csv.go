package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"evalgo.org/vcfcompat/models"
)

var csvHeader = []string{"Hostname", "Model", "CPU", "Compatibility"}

// ErrInvalidCSV is returned by ReadCSV for files that are not host exports.
var ErrInvalidCSV = errors.New("invalid host export")

// Row is one line of a host export.
type Row struct {
	Hostname      string
	Model         string
	CPU           string
	Compatibility models.CompatibilityResult
}

// WriteCSV writes one row per host, in the order given.
func WriteCSV(w io.Writer, hosts []models.ClassifiedHost) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, h := range hosts {
		record := []string{h.Hostname, h.Model, h.CPU, h.Compatibility.String()}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", h.Hostname, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the hosts to the file at path, replacing it.
func ExportCSV(path string, hosts []models.ClassifiedHost) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteCSV(f, hosts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV parses an export written by WriteCSV.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}
	if !slices.Equal(header, csvHeader) {
		return nil, fmt.Errorf("%w: unexpected header %v", ErrInvalidCSV, header)
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
		}
		rows = append(rows, Row{
			Hostname:      record[0],
			Model:         record[1],
			CPU:           record[2],
			Compatibility: models.ParseCompatibility(record[3]),
		})
	}
	return rows, nil
}
