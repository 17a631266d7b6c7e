package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/gigboard/internal/apperror"
	"github.com/sakif/gigboard/internal/model"
	"github.com/sakif/gigboard/internal/repository"
)

// compile-time check that *DB implements repository.VenueRepository
var _ repository.VenueRepository = (*DB)(nil)

const venueColumns = `id, name, city, state, address, phone, genres, image_link,
	facebook_link, website_link, seeking_talent, seeking_description,
	created_at, updated_at`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanVenue(s scanner) (model.Venue, error) {
	var v model.Venue
	err := s.Scan(
		&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.Genres,
		&v.ImageLink, &v.FacebookLink, &v.WebsiteLink, &v.SeekingTalent,
		&v.SeekingDescription, &v.CreatedAt, &v.UpdatedAt,
	)
	return v, err
}

// CreateVenue inserts a venue, filling in its ID and timestamps.
func (db *DB) CreateVenue(ctx context.Context, venue *model.Venue) error {
	id := xid.New().String()
	now := time.Now()

	err := db.withTx(ctx, "creating venue", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO venues (`+venueColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, venue.Name, venue.City, venue.State, venue.Address, venue.Phone,
			venue.Genres, venue.ImageLink, venue.FacebookLink, venue.WebsiteLink,
			boolInt(venue.SeekingTalent), venue.SeekingDescription, now, now,
		)
		return err
	})
	if err != nil {
		return err
	}

	// Only touch the caller's struct once the row is committed.
	venue.ID = id
	venue.CreatedAt = now
	venue.UpdatedAt = now
	return nil
}

// GetVenue retrieves a single venue by its ID.
// sql.ErrNoRows becomes apperror.ErrNotFound.
func (db *DB) GetVenue(ctx context.Context, id string) (*model.Venue, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+venueColumns+` FROM venues WHERE id = ?`, id)

	v, err := scanVenue(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("venue", id)
		}
		return nil, apperror.StoreFailed("sqlite: getting venue "+id, err)
	}
	return &v, nil
}

// ListVenues returns every venue. The order (state, city, name, id) is what
// makes the area listing deterministic: areas appear in the order their
// first venue is met.
func (db *DB) ListVenues(ctx context.Context) ([]model.Venue, error) {
	return db.queryVenues(ctx, "listing venues",
		`SELECT `+venueColumns+` FROM venues ORDER BY state, city, name, id`)
}

// ListVenuesInArea filters on the exact (city, state) pair.
func (db *DB) ListVenuesInArea(ctx context.Context, city, state string) ([]model.Venue, error) {
	return db.queryVenues(ctx, "listing venues in area",
		`SELECT `+venueColumns+` FROM venues
		 WHERE city = ? AND state = ?
		 ORDER BY name, id`, city, state)
}

// SearchVenues returns venues whose name contains term, ignoring ASCII case.
// SQLite's LOWER only folds ASCII; the service re-checks matches with full
// Unicode folding.
func (db *DB) SearchVenues(ctx context.Context, term string) ([]model.Venue, error) {
	return db.queryVenues(ctx, "searching venues",
		`SELECT `+venueColumns+` FROM venues
		 WHERE LOWER(name) LIKE ? ESCAPE '\'
		 ORDER BY name, id`, likePattern(term))
}

// VenuesByID loads the given venues keyed by id. Unknown ids are absent
// from the result rather than an error.
func (db *DB) VenuesByID(ctx context.Context, ids []string) (map[string]model.Venue, error) {
	out := make(map[string]model.Venue, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	venues, err := db.queryVenues(ctx, "loading venues by id",
		`SELECT `+venueColumns+` FROM venues WHERE id IN (`+placeholders(len(ids))+`)`,
		stringArgs(ids)...)
	if err != nil {
		return nil, err
	}
	for _, v := range venues {
		out[v.ID] = v
	}
	return out, nil
}

// UpdateVenue overwrites every editable field of an existing venue.
// Zero rows affected means the venue does not exist.
func (db *DB) UpdateVenue(ctx context.Context, venue *model.Venue) error {
	now := time.Now()

	err := db.withTx(ctx, "updating venue "+venue.ID, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE venues
			 SET name = ?, city = ?, state = ?, address = ?, phone = ?, genres = ?,
			     image_link = ?, facebook_link = ?, website_link = ?,
			     seeking_talent = ?, seeking_description = ?, updated_at = ?
			 WHERE id = ?`,
			venue.Name, venue.City, venue.State, venue.Address, venue.Phone,
			venue.Genres, venue.ImageLink, venue.FacebookLink, venue.WebsiteLink,
			boolInt(venue.SeekingTalent), venue.SeekingDescription, now, venue.ID,
		)
		if err != nil {
			return err
		}
		return requireOneRow(result, "venue", venue.ID)
	})
	if err != nil {
		return err
	}

	venue.UpdatedAt = now
	return nil
}

// DeleteVenue removes a venue and its shows in one transaction. The schema
// also cascades, but deleting the shows explicitly keeps the behaviour
// independent of the foreign_keys pragma.
func (db *DB) DeleteVenue(ctx context.Context, id string) error {
	return db.withTx(ctx, "deleting venue "+id, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
			return fmt.Errorf("deleting shows of venue %s: %w", id, err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return requireOneRow(result, "venue", id)
	})
}

func (db *DB) queryVenues(ctx context.Context, op, query string, args ...any) ([]model.Venue, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperror.StoreFailed("sqlite: "+op, err)
	}
	defer rows.Close()

	venues := make([]model.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, apperror.StoreFailed("sqlite: scanning venue row", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.StoreFailed("sqlite: iterating venues", err)
	}
	return venues, nil
}

// requireOneRow turns "no row matched the WHERE clause" into NotFound.
func requireOneRow(result sql.Result, resource, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
