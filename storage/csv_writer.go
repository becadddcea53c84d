package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/OPSE-Developers/OPSE-Records-Plugin/models"
)

var csvHeader = []string{
	"full_name", "house_number", "street", "postal_code", "city", "country",
	"phone_number", "phone_country", "country_code", "location", "carrier", "data_source",
}

// CSVWriter writes search results to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	closer io.Closer
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w, err := newCSVWriter(f, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return w, nil
}

func newCSVWriter(out io.Writer, closer io.Closer) (*CSVWriter, error) {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{closer: closer, writer: w}, w.Error()
}

// WriteResults appends one row per result.
func (c *CSVWriter) WriteResults(results []*models.SearchResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range results {
		a, p := r.Address, r.PhoneNumber
		row := []string{
			r.FullName,
			models.IntString(a.Number),
			models.StringValue(a.Street),
			models.StringValue(a.StateCode),
			models.StringValue(a.City),
			a.Country,
			models.StringValue(p.Number),
			models.StringValue(p.Country),
			models.StringValue(p.CountryCode),
			models.StringValue(p.Location),
			models.StringValue(p.Carrier),
			a.DataSource,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
