package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sakif/gigboard/internal/apperror"
)

// withTx runs fn as one unit of work: begin, fn, commit. If fn fails or
// panics, or the commit fails, the transaction is rolled back and nothing fn
// wrote is kept. The connection goes back to the pool on every path.
//
// Errors that already carry an apperror class (NotFound from a zero-row
// update, Validation from a broken reference) pass through unchanged;
// everything else is reported as a store failure for op.
func (db *DB) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return apperror.StoreFailed("sqlite: "+op+": begin", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return apperror.StoreFailed("sqlite: "+op, err)
	}

	if err := tx.Commit(); err != nil {
		return apperror.StoreFailed("sqlite: "+op+": commit", err)
	}
	return nil
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// likePattern turns a search term into a LIKE pattern matching it anywhere.
// The term is lower-cased to pair with LOWER(column), and LIKE wildcards in
// it are escaped so "100%" only matches a literal percent sign.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

func stringArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
