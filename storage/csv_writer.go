package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"flight-tracker/models"
)

// CSVWriter exports extracted flight records to a CSV file for inspection
// before they reach the database. It is safe for concurrent use.
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
		"origin", "destination", "index", "price", "airline",
		"departure_time", "arrival_time", "duration_minutes", "stops",
		"raw_text", "searched_at",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteRaw writes one search's extracted records to the CSV file.
func (c *CSVWriter) WriteRaw(search *models.SearchRecord, records []*models.FlightRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		price := ""
		if r.Price > 0 {
			price = strconv.FormatFloat(r.Price, 'f', 2, 64)
		}
		row := []string{
			search.Origin,
			search.Destination,
			strconv.Itoa(r.Index),
			price,
			r.Airline,
			r.DepartureTime,
			r.ArrivalTime,
			strconv.Itoa(r.DurationMinutes),
			string(r.Stops),
			r.RawText,
			search.SearchedAt.Format(time.RFC3339),
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
