package domain

import "errors"

// Error kinds surfaced by the loaders and the report queries. Callers match
// them with errors.Is; the wrapped error carries the table, file or query.
var (
	ErrSourceNotFound     = errors.New("source not found")
	ErrMalformedRecord    = errors.New("malformed record")
	ErrIntegrityViolation = errors.New("integrity violation")
	ErrQueryExecution     = errors.New("query execution error")
)
