// Package storage provides the durable key-value store the session mirrors
// itself into, backed by a local SQLite database.
package storage

import (
	"context"
	"database/sql"
)

// Keys used by the session manager. The store holds exactly these two for
// the session: the bearer credential and the serialized user record.
const (
	KeyCredential = "userToken"
	KeyUser       = "user"
)

// Repository is a simple key-value sink with byte-slice values.
// A missing key reads back as nil with no error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}

// DBTX is the subset of database/sql the repository needs. Both *sql.DB and
// *sql.Tx satisfy it, so the same repository code runs inside and outside a
// transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction, committing on success and rolling
// back on error or panic (panics are rethrown). The session manager uses it
// to persist credential and user atomically, so a crash cannot leave one
// written without the other.
func WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
