package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/gigboard/internal/apperror"
	"github.com/sakif/gigboard/internal/model"
	"github.com/sakif/gigboard/internal/repository"
)

// compile-time check that *DB implements repository.EditorRepository
var _ repository.EditorRepository = (*DB)(nil)

// UpsertEditor inserts a new editor or refreshes the profile of the one with
// the same (Provider, Subject). An existing editor keeps its internal ID and
// CreatedAt, so tokens issued earlier stay valid.
func (db *DB) UpsertEditor(ctx context.Context, editor *model.Editor) error {
	now := time.Now()
	var (
		id        string
		createdAt time.Time
	)

	err := db.withTx(ctx, "upserting editor", func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`SELECT id, created_at FROM editors WHERE provider = ? AND subject = ?`,
			editor.Provider, editor.Subject,
		).Scan(&id, &createdAt)

		switch {
		case err == sql.ErrNoRows:
			id = xid.New().String()
			createdAt = now
			_, err = tx.ExecContext(ctx,
				`INSERT INTO editors (id, provider, subject, login, email, avatar_url, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				id, editor.Provider, editor.Subject, editor.Login, editor.Email,
				editor.AvatarURL, now, now,
			)
			return err
		case err != nil:
			return err
		}

		// Profile fields may have changed on the provider side.
		_, err = tx.ExecContext(ctx,
			`UPDATE editors SET login = ?, email = ?, avatar_url = ?, updated_at = ?
			 WHERE id = ?`,
			editor.Login, editor.Email, editor.AvatarURL, now, id,
		)
		return err
	})
	if err != nil {
		return err
	}

	editor.ID = id
	editor.CreatedAt = createdAt
	editor.UpdatedAt = now
	return nil
}

// GetEditor retrieves an editor by internal ID.
// Returns apperror.ErrNotFound if no editor exists with that ID.
func (db *DB) GetEditor(ctx context.Context, id string) (*model.Editor, error) {
	var e model.Editor
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, provider, subject, login, email, avatar_url, created_at, updated_at
		 FROM editors WHERE id = ?`, id,
	).Scan(&e.ID, &e.Provider, &e.Subject, &e.Login, &e.Email, &e.AvatarURL,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("editor", id)
		}
		return nil, apperror.StoreFailed("sqlite: getting editor "+id, err)
	}
	return &e, nil
}
