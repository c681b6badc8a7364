package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AlefSillva/projeto-empresa-db/internal/domain"
	"github.com/AlefSillva/projeto-empresa-db/internal/logger"
)

// Querier is the read surface shared by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// ConnManager hands out one pooled connection per unit of work.
type ConnManager struct {
	db *sql.DB
}

// NewConnManager creates a new ConnManager
func NewConnManager(db *sql.DB) *ConnManager {
	return &ConnManager{db: db}
}

// WithConn acquires a connection, runs fn with it and releases it on every
// exit path, including a panic inside fn.
func (m *ConnManager) WithConn(ctx context.Context, fn func(ctx context.Context, q Querier) error) error {
	conn, err := m.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: acquire connection: %v", domain.ErrQueryExecution, err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			logger.WarnLog(ctx, "Failed to release connection: %v", cerr)
		}
	}()

	return fn(ctx, conn)
}
