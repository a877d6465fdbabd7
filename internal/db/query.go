package db

import (
	"context"
	"database/sql"

	"github.com/russross/meddler"
)

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// QueryRow is meddler.QueryRow bound to ctx. It returns sql.ErrNoRows when
// the query matches nothing.
func QueryRow(ctx context.Context, q Querier, dst any, query string, args ...any) error {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	return meddler.ScanRow(rows, dst)
}

// QueryAll is meddler.QueryAll bound to ctx.
func QueryAll(ctx context.Context, q Querier, dst any, query string, args ...any) error {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	return meddler.ScanAll(rows, dst)
}
