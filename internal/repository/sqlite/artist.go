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

// compile-time check that *DB implements repository.ArtistRepository
var _ repository.ArtistRepository = (*DB)(nil)

const artistColumns = `id, name, city, state, phone, genres, image_link,
	facebook_link, website_link, seeking_venue, seeking_description,
	created_at, updated_at`

func scanArtist(s scanner) (model.Artist, error) {
	var a model.Artist
	err := s.Scan(
		&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &a.Genres, &a.ImageLink,
		&a.FacebookLink, &a.WebsiteLink, &a.SeekingVenue, &a.SeekingDescription,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (db *DB) CreateArtist(ctx context.Context, artist *model.Artist) error {
	id := xid.New().String()
	now := time.Now()

	err := db.withTx(ctx, "creating artist", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO artists (`+artistColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, artist.Name, artist.City, artist.State, artist.Phone, artist.Genres,
			artist.ImageLink, artist.FacebookLink, artist.WebsiteLink,
			boolInt(artist.SeekingVenue), artist.SeekingDescription, now, now,
		)
		return err
	})
	if err != nil {
		return err
	}

	artist.ID = id
	artist.CreatedAt = now
	artist.UpdatedAt = now
	return nil
}

func (db *DB) GetArtist(ctx context.Context, id string) (*model.Artist, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+artistColumns+` FROM artists WHERE id = ?`, id)

	a, err := scanArtist(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("artist", id)
		}
		return nil, apperror.StoreFailed("sqlite: getting artist "+id, err)
	}
	return &a, nil
}

func (db *DB) ListArtists(ctx context.Context) ([]model.Artist, error) {
	return db.queryArtists(ctx, "listing artists",
		`SELECT `+artistColumns+` FROM artists ORDER BY name, id`)
}

// SearchArtists mirrors SearchVenues.
func (db *DB) SearchArtists(ctx context.Context, term string) ([]model.Artist, error) {
	return db.queryArtists(ctx, "searching artists",
		`SELECT `+artistColumns+` FROM artists
		 WHERE LOWER(name) LIKE ? ESCAPE '\'
		 ORDER BY name, id`, likePattern(term))
}

func (db *DB) ArtistsByID(ctx context.Context, ids []string) (map[string]model.Artist, error) {
	out := make(map[string]model.Artist, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	artists, err := db.queryArtists(ctx, "loading artists by id",
		`SELECT `+artistColumns+` FROM artists WHERE id IN (`+placeholders(len(ids))+`)`,
		stringArgs(ids)...)
	if err != nil {
		return nil, err
	}
	for _, a := range artists {
		out[a.ID] = a
	}
	return out, nil
}

func (db *DB) UpdateArtist(ctx context.Context, artist *model.Artist) error {
	now := time.Now()

	err := db.withTx(ctx, "updating artist "+artist.ID, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE artists
			 SET name = ?, city = ?, state = ?, phone = ?, genres = ?,
			     image_link = ?, facebook_link = ?, website_link = ?,
			     seeking_venue = ?, seeking_description = ?, updated_at = ?
			 WHERE id = ?`,
			artist.Name, artist.City, artist.State, artist.Phone, artist.Genres,
			artist.ImageLink, artist.FacebookLink, artist.WebsiteLink,
			boolInt(artist.SeekingVenue), artist.SeekingDescription, now, artist.ID,
		)
		if err != nil {
			return err
		}
		return requireOneRow(result, "artist", artist.ID)
	})
	if err != nil {
		return err
	}

	artist.UpdatedAt = now
	return nil
}

func (db *DB) queryArtists(ctx context.Context, op, query string, args ...any) ([]model.Artist, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperror.StoreFailed("sqlite: "+op, err)
	}
	defer rows.Close()

	artists := make([]model.Artist, 0)
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, apperror.StoreFailed("sqlite: scanning artist row", err)
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.StoreFailed("sqlite: iterating artists", err)
	}
	return artists, nil
}
