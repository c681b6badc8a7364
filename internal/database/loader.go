package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/AlefSillva/projeto-empresa-db/internal/domain"
	"github.com/AlefSillva/projeto-empresa-db/internal/logger"
	"github.com/AlefSillva/projeto-empresa-db/internal/repository/builder"
	"github.com/AlefSillva/projeto-empresa-db/internal/source"
)

// defaultBatchSize keeps every INSERT well under the bind variable limits of
// SQLite (32766) and PostgreSQL (65535) for the widest table.
const defaultBatchSize = 500

// Loader inserts source records into their tables.
type Loader struct {
	db        *sql.DB
	dialect   Dialect
	batchSize int
}

// NewLoader creates a new Loader
func NewLoader(db *sql.DB, dialect Dialect) *Loader {
	return &Loader{db: db, dialect: dialect, batchSize: defaultBatchSize}
}

// Load inserts every record into table inside one transaction and returns
// the number of rows written. Columns are matched by name against the
// table definition; a constraint failure rolls back the whole table.
func (l *Loader) Load(ctx context.Context, table string, records []source.Record) (int64, error) {
	t, ok := LookupTable(table)
	if !ok {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	if len(records) == 0 {
		return 0, nil
	}
	if err := checkColumns(t, records[0].Keys()); err != nil {
		return 0, err
	}

	rows := make([][]interface{}, len(records))
	for i, rec := range records {
		row, err := convertRecord(t, rec)
		if err != nil {
			return 0, fmt.Errorf("%s record %d: %w", table, i+1, err)
		}
		rows[i] = row
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin load %s: %w", table, err)
	}
	defer tx.Rollback()

	columns := t.ColumnNames()
	for start := 0; start < len(rows); start += l.batchSize {
		end := start + l.batchSize
		if end > len(rows) {
			end = len(rows)
		}

		b := builder.NewSQLBuilder().Placeholder(l.dialect.Placeholder()).Insert(table, columns...)
		for _, row := range rows[start:end] {
			b.Values(row...)
		}
		query, args, err := b.BuildSafe()
		if err != nil {
			return 0, fmt.Errorf("build insert for %s: %w", table, err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if IsIntegrityViolation(err) {
				return 0, fmt.Errorf("%w: insert into %s: %v", domain.ErrIntegrityViolation, table, err)
			}
			return 0, fmt.Errorf("insert into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		if IsIntegrityViolation(err) {
			return 0, fmt.Errorf("%w: commit %s: %v", domain.ErrIntegrityViolation, table, err)
		}
		return 0, fmt.Errorf("commit %s: %w", table, err)
	}
	return int64(len(rows)), nil
}

// LoadAll loads every dataset present in sets, parents before children.
// Datasets naming unknown tables are rejected before anything is written.
func (l *Loader) LoadAll(ctx context.Context, sets source.Datasets) (map[string]int64, error) {
	for name := range sets {
		if _, ok := LookupTable(name); !ok {
			return nil, fmt.Errorf("no table for dataset %q", name)
		}
	}

	counts := make(map[string]int64, len(sets))
	for _, t := range Tables {
		ds, ok := sets[t.Name]
		if !ok {
			logger.WarnLog(ctx, "No source for table %s, leaving it empty", t.Name)
			continue
		}
		n, err := l.Load(ctx, t.Name, ds.Records)
		if err != nil {
			return counts, err
		}
		counts[t.Name] = n
		logger.InfoLog(ctx, "Loaded %d rows into %s", n, t.Name)
	}
	return counts, nil
}

func checkColumns(t Table, keys []string) error {
	want := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		want[c.Name] = true
	}

	var unexpected []string
	for _, k := range keys {
		if !want[k] {
			unexpected = append(unexpected, k)
			continue
		}
		delete(want, k)
	}

	if len(want) == 0 && len(unexpected) == 0 {
		return nil
	}
	missing := make([]string, 0, len(want))
	for k := range want {
		missing = append(missing, k)
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: %s columns do not match: missing [%s], unexpected [%s]",
		domain.ErrMalformedRecord, t.Name, strings.Join(missing, ", "), strings.Join(unexpected, ", "))
}

func convertRecord(t Table, rec source.Record) ([]interface{}, error) {
	row := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		raw, ok := rec.Get(c.Name)
		if !ok {
			return nil, fmt.Errorf("%w: missing column %s", domain.ErrMalformedRecord, c.Name)
		}
		v, err := convertValue(c, raw)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}

func convertValue(c Column, raw string) (interface{}, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" && c.Nullable {
		return nil, nil
	}

	switch c.Type {
	case Integer:
		v, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: column %s: %q is not an integer", domain.ErrMalformedRecord, c.Name, raw)
		}
		return v, nil
	case Real:
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: column %s: %q is not a number", domain.ErrMalformedRecord, c.Name, raw)
		}
		return v, nil
	default:
		return raw, nil
	}
}
