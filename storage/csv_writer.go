package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// CSVWriter writes the adjustment grid to a CSV file: one row per
// comparable, one column per line-item category in the engine's fixed
// order. It is safe for concurrent use.
type CSVWriter struct {
	mu         sync.Mutex
	file       *os.File
	writer     *csv.Writer
	categories []string
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string, categories []string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	header := append([]string{"comparable", "base_sale_price"}, categories...)
	header = append(header, "net_adjustment", "adjusted_price", "similarity")
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w, categories: categories}, nil
}

// WriteRun appends every grid row of the run to the CSV file.
func (c *CSVWriter) WriteRun(run *Run) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, row := range run.Grid {
		record := make([]string, 0, len(c.categories)+5)
		record = append(record, row.Comparable, money(row.BasePrice))
		for _, item := range row.LineItems {
			record = append(record, money(item.Amount))
		}
		record = append(record, money(row.NetAdjustment), money(row.AdjustedPrice), money(row.Similarity))

		if err := c.writer.Write(record); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func money(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
