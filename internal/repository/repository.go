// Package repository declares the record store boundary.
//
// Services depend on these interfaces, never on the sqlite package. Every
// method takes the request context so a cancelled request stops its query.
// Implementations report a missing record as apperror.ErrNotFound and a
// failed unit of work as apperror.ErrStore; writes are all-or-nothing.
package repository

import (
	"context"

	"github.com/sakif/gigboard/internal/model"
)

type VenueRepository interface {
	CreateVenue(ctx context.Context, venue *model.Venue) error
	GetVenue(ctx context.Context, id string) (*model.Venue, error)
	// ListVenues returns every venue ordered by state, city, name, id.
	ListVenues(ctx context.Context) ([]model.Venue, error)
	ListVenuesInArea(ctx context.Context, city, state string) ([]model.Venue, error)
	SearchVenues(ctx context.Context, term string) ([]model.Venue, error)
	VenuesByID(ctx context.Context, ids []string) (map[string]model.Venue, error)
	UpdateVenue(ctx context.Context, venue *model.Venue) error
	// DeleteVenue removes the venue and every show it hosts.
	DeleteVenue(ctx context.Context, id string) error
}

type ArtistRepository interface {
	CreateArtist(ctx context.Context, artist *model.Artist) error
	GetArtist(ctx context.Context, id string) (*model.Artist, error)
	ListArtists(ctx context.Context) ([]model.Artist, error)
	SearchArtists(ctx context.Context, term string) ([]model.Artist, error)
	ArtistsByID(ctx context.Context, ids []string) (map[string]model.Artist, error)
	UpdateArtist(ctx context.Context, artist *model.Artist) error
}

type ShowRepository interface {
	CreateShow(ctx context.Context, show *model.Show) error
	// ListShows returns every show ordered by start time.
	ListShows(ctx context.Context) ([]model.Show, error)
	ListShowsByVenue(ctx context.Context, venueID string) ([]model.Show, error)
	ListShowsByArtist(ctx context.Context, artistID string) ([]model.Show, error)
}

type EditorRepository interface {
	// UpsertEditor inserts or refreshes the editor keyed by (Provider, Subject)
	// and fills in ID and timestamps.
	UpsertEditor(ctx context.Context, editor *model.Editor) error
	GetEditor(ctx context.Context, id string) (*model.Editor, error)
}
