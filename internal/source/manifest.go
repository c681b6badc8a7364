package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v2"
)

// Datasets maps a table name to the records read for it.
type Datasets map[string]*Dataset

// Manifest names the CSV file that feeds each table.
type Manifest struct {
	Dir    string            `yaml:"dir"`
	Tables map[string]string `yaml:"tables"`
}

// DefaultManifest maps every table to "<table>.csv" under dir.
func DefaultManifest(dir string, tables []string) *Manifest {
	m := &Manifest{Dir: dir, Tables: make(map[string]string, len(tables))}
	for _, t := range tables {
		m.Tables[t] = t + ".csv"
	}
	return m
}

// LoadManifest reads a YAML manifest. A relative dir is resolved against the
// manifest's own directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.UnmarshalStrict(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	if len(m.Tables) == 0 {
		return nil, fmt.Errorf("manifest %s lists no tables", path)
	}
	if !filepath.IsAbs(m.Dir) {
		m.Dir = filepath.Join(filepath.Dir(path), m.Dir)
	}
	return &m, nil
}

// Path returns the file backing table, or "" when the manifest has none.
func (m *Manifest) Path(table string) string {
	file, ok := m.Tables[table]
	if !ok {
		return ""
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(m.Dir, file)
}

// Read loads every source listed in the manifest. The first failing source
// aborts the read.
func (m *Manifest) Read() (Datasets, error) {
	names := make([]string, 0, len(m.Tables))
	for t := range m.Tables {
		names = append(names, t)
	}
	sort.Strings(names)

	sets := make(Datasets, len(names))
	for _, t := range names {
		ds, err := ReadFile(m.Path(t))
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", t, err)
		}
		sets[t] = ds
	}
	return sets, nil
}
