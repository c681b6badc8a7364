package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/AlefSillva/projeto-empresa-db/internal/repository/builder"
)

// Dialect identifies the SQL engine behind a *sql.DB.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// Placeholder returns the bind marker style the engine accepts.
func (d Dialect) Placeholder() builder.PlaceholderFormat {
	if d == Postgres {
		return builder.Dollar
	}
	return builder.Question
}

func (d Dialect) columnType(t ColumnType) string {
	switch t {
	case Integer:
		return "INTEGER"
	case Real:
		if d == Postgres {
			return "DOUBLE PRECISION"
		}
		return "REAL"
	default:
		return "TEXT"
	}
}

// Config holds the connection settings for either engine.
type Config struct {
	Driver          string
	Path            string
	DSN             string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open opens and pings the configured database.
func Open(ctx context.Context, cfg Config) (*sql.DB, Dialect, error) {
	dialect := Dialect(strings.ToLower(cfg.Driver))

	var dsn string
	switch dialect {
	case SQLite:
		dsn = sqliteDSN(cfg.DSN)
		if dsn == "" {
			if strings.TrimSpace(cfg.Path) == "" {
				return nil, "", fmt.Errorf("sqlite path is required")
			}
			dsn = "file:" + filepath.Clean(cfg.Path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
		}
	case Postgres:
		dsn = cfg.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
				cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
		}
	default:
		return nil, "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("open %s db: %w", dialect, err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("ping %s db: %w", dialect, err)
	}
	if dialect == SQLite {
		if err := checkForeignKeys(ctx, db); err != nil {
			_ = db.Close()
			return nil, "", err
		}
	}
	return db, dialect, nil
}

// sqliteDSN makes sure a user supplied DSN turns foreign keys on for every
// pooled connection.
func sqliteDSN(dsn string) string {
	if dsn == "" || strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func checkForeignKeys(ctx context.Context, db *sql.DB) error {
	var enabled int
	if err := db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("read sqlite foreign_keys pragma: %w", err)
	}
	if enabled != 1 {
		return fmt.Errorf("sqlite foreign key enforcement is disabled by the DSN")
	}
	return nil
}
