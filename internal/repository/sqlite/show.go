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

// compile-time check that *DB implements repository.ShowRepository
var _ repository.ShowRepository = (*DB)(nil)

const showColumns = `id, artist_id, venue_id, start_time, created_at`

// CreateShow inserts a show. A reference to a missing artist or venue is
// refused by the foreign keys and reported as a validation error.
func (db *DB) CreateShow(ctx context.Context, show *model.Show) error {
	id := xid.New().String()
	now := time.Now()

	err := db.withTx(ctx, "creating show", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO shows (`+showColumns+`) VALUES (?, ?, ?, ?, ?)`,
			id, show.ArtistID, show.VenueID, show.StartTime, now,
		)
		if isForeignKeyViolation(err) {
			return apperror.ValidationFailed("venue_id",
				"show must reference an existing artist and venue")
		}
		return err
	})
	if err != nil {
		return err
	}

	show.ID = id
	show.CreatedAt = now
	return nil
}

func (db *DB) ListShows(ctx context.Context) ([]model.Show, error) {
	return db.queryShows(ctx, "listing shows",
		`SELECT `+showColumns+` FROM shows ORDER BY start_time, id`)
}

func (db *DB) ListShowsByVenue(ctx context.Context, venueID string) ([]model.Show, error) {
	return db.queryShows(ctx, "listing shows of venue "+venueID,
		`SELECT `+showColumns+` FROM shows WHERE venue_id = ? ORDER BY start_time, id`, venueID)
}

func (db *DB) ListShowsByArtist(ctx context.Context, artistID string) ([]model.Show, error) {
	return db.queryShows(ctx, "listing shows of artist "+artistID,
		`SELECT `+showColumns+` FROM shows WHERE artist_id = ? ORDER BY start_time, id`, artistID)
}

func (db *DB) queryShows(ctx context.Context, op, query string, args ...any) ([]model.Show, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperror.StoreFailed("sqlite: "+op, err)
	}
	defer rows.Close()

	shows := make([]model.Show, 0)
	for rows.Next() {
		var s model.Show
		if err := rows.Scan(&s.ID, &s.ArtistID, &s.VenueID, &s.StartTime, &s.CreatedAt); err != nil {
			return nil, apperror.StoreFailed("sqlite: scanning show row", err)
		}
		shows = append(shows, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.StoreFailed("sqlite: iterating shows", err)
	}
	return shows, nil
}
