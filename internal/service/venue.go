// Package service holds the business rules between the HTTP handlers and the
// record store.
//
//	Handler (HTTP) → Service (validation, listing rules) → Repository (SQL)
//
// Services take repository interfaces, a clock and the boundary policy, so
// tests run against in-memory fakes at a fixed "now". They return apperror
// values; handlers map those to status codes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/sakif/gigboard/internal/apperror"
	"github.com/sakif/gigboard/internal/clock"
	"github.com/sakif/gigboard/internal/listing"
	"github.com/sakif/gigboard/internal/model"
	"github.com/sakif/gigboard/internal/repository"
)

// SearchResult is the answer to a name search.
type SearchResult struct {
	SearchTerm string            `json:"search_term"`
	Count      int               `json:"count"`
	Data       []listing.Summary `json:"data"`
}

// VenueService handles venue listings, search, detail pages and edits.
type VenueService struct {
	venues   repository.VenueRepository
	artists  repository.ArtistRepository
	shows    repository.ShowRepository
	clock    clock.Clock
	boundary listing.Boundary
	logger   *slog.Logger
}

func NewVenueService(
	venues repository.VenueRepository,
	artists repository.ArtistRepository,
	shows repository.ShowRepository,
	clk clock.Clock,
	boundary listing.Boundary,
	logger *slog.Logger,
) *VenueService {
	return &VenueService{
		venues:   venues,
		artists:  artists,
		shows:    shows,
		clock:    clk,
		boundary: boundary,
		logger:   logger,
	}
}

// Areas lists every venue grouped by (city, state), each with its number of
// upcoming shows.
func (s *VenueService) Areas(ctx context.Context) ([]listing.Area, error) {
	venues, err := s.venues.ListVenues(ctx)
	if err != nil {
		return nil, s.storeError("listing venues", err)
	}
	return s.group(ctx, venues)
}

// Area is Areas restricted to one exact (city, state). An area without venues
// yields an empty list, not NotFound.
func (s *VenueService) Area(ctx context.Context, city, state string) ([]listing.Area, error) {
	venues, err := s.venues.ListVenuesInArea(ctx, city, state)
	if err != nil {
		return nil, s.storeError("listing venues in area", err)
	}
	return s.group(ctx, venues)
}

func (s *VenueService) group(ctx context.Context, venues []model.Venue) ([]listing.Area, error) {
	shows, err := s.shows.ListShows(ctx)
	if err != nil {
		return nil, s.storeError("listing shows", err)
	}
	return listing.GroupByArea(s.clock.Now(), venues, listing.ShowsByVenue(shows), s.boundary)
}

// Search finds venues whose name contains term, ignoring case.
func (s *VenueService) Search(ctx context.Context, term string) (*SearchResult, error) {
	// SQLite's LOWER folds ASCII only, so a term with other letters is
	// matched in Go against every venue.
	var (
		candidates []model.Venue
		err        error
	)
	if isASCII(term) {
		candidates, err = s.venues.SearchVenues(ctx, term)
	} else {
		candidates, err = s.venues.ListVenues(ctx)
	}
	if err != nil {
		return nil, s.storeError("searching venues", err)
	}
	matches, count := listing.MatchName(term, candidates, venueName)

	shows, err := s.shows.ListShows(ctx)
	if err != nil {
		return nil, s.storeError("listing shows", err)
	}
	data, err := listing.Summarize(s.clock.Now(), matches, venueID, venueName,
		listing.ShowsByVenue(shows), s.boundary)
	if err != nil {
		return nil, err
	}
	return &SearchResult{SearchTerm: term, Count: count, Data: data}, nil
}

// Detail is the venue page: the venue plus its past and upcoming shows, each
// naming the artist playing.
func (s *VenueService) Detail(ctx context.Context, id string) (*listing.VenueDetail, error) {
	venue, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	shows, err := s.shows.ListShowsByVenue(ctx, venue.ID)
	if err != nil {
		return nil, s.storeError("listing shows of venue", err)
	}
	artists, err := s.artists.ArtistsByID(ctx, artistIDs(shows))
	if err != nil {
		return nil, s.storeError("loading artists", err)
	}

	return listing.AssembleVenue(s.clock.Now(), *venue, shows, artists, s.boundary)
}

// Get returns the stored venue, the starting point of the edit form.
func (s *VenueService) Get(ctx context.Context, id string) (*model.Venue, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "venue ID is required")
	}
	return s.venues.GetVenue(ctx, id)
}

func (s *VenueService) Create(ctx context.Context, in VenueInput) (*model.Venue, error) {
	venue := &model.Venue{}
	if err := in.apply(venue); err != nil {
		return nil, err
	}

	if err := s.venues.CreateVenue(ctx, venue); err != nil {
		s.logger.Error("failed to create venue",
			slog.String("name", venue.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating venue: %w", err)
	}

	s.logger.Info("venue created",
		slog.String("id", venue.ID),
		slog.String("name", venue.Name),
	)
	return venue, nil
}

// Update loads the venue and overwrites every editable field with in.
func (s *VenueService) Update(ctx context.Context, id string, in VenueInput) (*model.Venue, error) {
	venue, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(venue); err != nil {
		return nil, err
	}

	if err := s.venues.UpdateVenue(ctx, venue); err != nil {
		s.logger.Error("failed to update venue",
			slog.String("id", venue.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating venue: %w", err)
	}

	s.logger.Info("venue updated", slog.String("id", venue.ID))
	return venue, nil
}

// Delete removes the venue together with its shows.
func (s *VenueService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "venue ID is required")
	}

	if err := s.venues.DeleteVenue(ctx, id); err != nil {
		return err
	}

	s.logger.Info("venue deleted", slog.String("id", id))
	return nil
}

func (s *VenueService) storeError(op string, err error) error {
	s.logger.Error("failed "+op, slog.String("error", err.Error()))
	return fmt.Errorf("%s: %w", op, err)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func venueID(v model.Venue) string   { return v.ID }
func venueName(v model.Venue) string { return v.Name }

// artistIDs returns the distinct artist ids of shows in first-seen order.
func artistIDs(shows []model.Show) []string {
	return distinct(shows, func(s model.Show) string { return s.ArtistID })
}

func venueIDs(shows []model.Show) []string {
	return distinct(shows, func(s model.Show) string { return s.VenueID })
}

func distinct(shows []model.Show, key func(model.Show) string) []string {
	seen := make(map[string]bool, len(shows))
	out := make([]string, 0, len(shows))
	for _, sh := range shows {
		k := key(sh)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
