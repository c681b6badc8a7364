// Package source reads the tabular input files into ordered field-mappings.
package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/AlefSillva/projeto-empresa-db/internal/domain"
)

// Field is one column of a record.
type Field struct {
	Key   string
	Value string
}

// Record is one row of a source, with fields in header order.
type Record []Field

// Get returns the value stored under key.
func (r Record) Get(key string) (string, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Keys returns the field keys in header order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// Dataset is the content of one source.
type Dataset struct {
	Source  string
	Header  []string
	Records []Record
}

// ReadFile reads a CSV file whose first row is the header.
func ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("open source %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", path, err)
	}
	ds.Source = path
	return ds, nil
}

// Read parses CSV content from r. Every row must have as many fields as the
// header; the reader rejects ragged rows with domain.ErrMalformedRecord.
func Read(r io.Reader) (*Dataset, error) {
	rows, err := gocsv.DefaultCSVReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header", domain.ErrMalformedRecord)
	}

	header, err := normalizeHeader(rows[0])
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Header:  header,
		Records: make([]Record, 0, len(rows)-1),
	}
	for i, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d", domain.ErrMalformedRecord, i+2, len(row), len(header))
		}
		rec := make(Record, len(header))
		for j, key := range header {
			rec[j] = Field{Key: key, Value: row[j]}
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

func normalizeHeader(raw []string) ([]string, error) {
	header := make([]string, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, h := range raw {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, fmt.Errorf("%w: empty column name at position %d", domain.ErrMalformedRecord, i+1)
		}
		if seen[h] {
			return nil, fmt.Errorf("%w: duplicate column %q", domain.ErrMalformedRecord, h)
		}
		seen[h] = true
		header[i] = h
	}
	return header, nil
}
