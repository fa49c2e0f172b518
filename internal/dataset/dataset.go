// Package dataset accumulates scraped records and persists them as CSV.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cine-tools/allocine/pkg/models"
)

// Dataset is an ordered accumulator of movie records. It is owned by the
// scrape loop and never shared across goroutines.
type Dataset struct {
	records []models.Record
}

// New returns an empty dataset
func New() *Dataset {
	return &Dataset{}
}

// Append adds records in order
func (d *Dataset) Append(records ...models.Record) {
	d.records = append(d.records, records...)
}

// Len returns the number of accumulated records
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns the accumulated records in insertion order
func (d *Dataset) Records() []models.Record {
	return d.records
}

// Write serializes the full dataset to w: a header row with the fixed
// column names, then one row per record.
func (d *Dataset) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.Columns()); err != nil {
		return err
	}
	for _, rec := range d.records {
		if err := cw.Write(rec.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save rewrites the entire dataset to path. The file is written to a
// temporary sibling first and renamed into place, so a crash mid-write
// leaves the previous save intact.
func (d *Dataset) Save(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if err := d.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace dataset file: %w", err)
	}
	return nil
}

// Load reads a previously saved dataset back from path
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset %s has no header row", path)
	}

	d := New()
	for _, row := range rows[1:] {
		rec, err := models.FromRow(row)
		if err != nil {
			return nil, err
		}
		d.Append(rec)
	}
	return d, nil
}
