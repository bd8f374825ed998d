package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/Eutropios/WarMAC/models"
)

// CSVWriter dumps fetched raw orders to a CSV file for later
// inspection. It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
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

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"item", "platform", "order_type", "platinum", "visible", "rank", "refinement", "last_update",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteOrders appends one row per raw order under the given item name.
func (c *CSVWriter) WriteOrders(item string, orders []models.RawOrder) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, o := range orders {
		rank := ""
		if o.Rank != nil {
			rank = strconv.Itoa(*o.Rank)
		}
		refinement := ""
		if o.Refinement != nil {
			refinement = string(*o.Refinement)
		}

		row := []string{
			item,
			string(o.Platform),
			string(o.Kind),
			strconv.Itoa(o.Price),
			strconv.FormatBool(o.Visible),
			rank,
			refinement,
			o.LastUpdate.Format(time.RFC3339),
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
	return c.file.Close()
}
