package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/gigboard/internal/apperror"
	"github.com/sakif/gigboard/internal/clock"
	"github.com/sakif/gigboard/internal/listing"
	"github.com/sakif/gigboard/internal/model"
	"github.com/sakif/gigboard/internal/repository"
)

// ArtistSummary is one row of the artists page.
type ArtistSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ArtistService handles the artist list, search, detail pages and edits.
// Artists cannot be deleted.
type ArtistService struct {
	artists  repository.ArtistRepository
	venues   repository.VenueRepository
	shows    repository.ShowRepository
	clock    clock.Clock
	boundary listing.Boundary
	logger   *slog.Logger
}

func NewArtistService(
	artists repository.ArtistRepository,
	venues repository.VenueRepository,
	shows repository.ShowRepository,
	clk clock.Clock,
	boundary listing.Boundary,
	logger *slog.Logger,
) *ArtistService {
	return &ArtistService{
		artists:  artists,
		venues:   venues,
		shows:    shows,
		clock:    clk,
		boundary: boundary,
		logger:   logger,
	}
}

func (s *ArtistService) List(ctx context.Context) ([]ArtistSummary, error) {
	artists, err := s.artists.ListArtists(ctx)
	if err != nil {
		s.logger.Error("failed to list artists", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing artists: %w", err)
	}

	out := make([]ArtistSummary, 0, len(artists))
	for _, a := range artists {
		out = append(out, ArtistSummary{ID: a.ID, Name: a.Name})
	}
	return out, nil
}

// Search finds artists whose name contains term, ignoring case.
func (s *ArtistService) Search(ctx context.Context, term string) (*SearchResult, error) {
	var (
		candidates []model.Artist
		err        error
	)
	if isASCII(term) {
		candidates, err = s.artists.SearchArtists(ctx, term)
	} else {
		candidates, err = s.artists.ListArtists(ctx)
	}
	if err != nil {
		s.logger.Error("failed to search artists", slog.String("error", err.Error()))
		return nil, fmt.Errorf("searching artists: %w", err)
	}
	matches, count := listing.MatchName(term, candidates, artistName)

	shows, err := s.shows.ListShows(ctx)
	if err != nil {
		s.logger.Error("failed to list shows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing shows: %w", err)
	}
	data, err := listing.Summarize(s.clock.Now(), matches, artistID, artistName,
		listing.ShowsByArtist(shows), s.boundary)
	if err != nil {
		return nil, err
	}
	return &SearchResult{SearchTerm: term, Count: count, Data: data}, nil
}

// Detail is the artist page: the artist plus past and upcoming shows, each
// naming the venue.
func (s *ArtistService) Detail(ctx context.Context, id string) (*listing.ArtistDetail, error) {
	artist, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	shows, err := s.shows.ListShowsByArtist(ctx, artist.ID)
	if err != nil {
		s.logger.Error("failed to list shows of artist",
			slog.String("id", artist.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing shows of artist: %w", err)
	}
	venues, err := s.venues.VenuesByID(ctx, venueIDs(shows))
	if err != nil {
		s.logger.Error("failed to load venues", slog.String("error", err.Error()))
		return nil, fmt.Errorf("loading venues: %w", err)
	}

	return listing.AssembleArtist(s.clock.Now(), *artist, shows, venues, s.boundary)
}

func (s *ArtistService) Get(ctx context.Context, id string) (*model.Artist, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "artist ID is required")
	}
	return s.artists.GetArtist(ctx, id)
}

func (s *ArtistService) Create(ctx context.Context, in ArtistInput) (*model.Artist, error) {
	artist := &model.Artist{}
	if err := in.apply(artist); err != nil {
		return nil, err
	}

	if err := s.artists.CreateArtist(ctx, artist); err != nil {
		s.logger.Error("failed to create artist",
			slog.String("name", artist.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating artist: %w", err)
	}

	s.logger.Info("artist created",
		slog.String("id", artist.ID),
		slog.String("name", artist.Name),
	)
	return artist, nil
}

// Update loads the artist and overwrites every editable field with in.
func (s *ArtistService) Update(ctx context.Context, id string, in ArtistInput) (*model.Artist, error) {
	artist, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(artist); err != nil {
		return nil, err
	}

	if err := s.artists.UpdateArtist(ctx, artist); err != nil {
		s.logger.Error("failed to update artist",
			slog.String("id", artist.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating artist: %w", err)
	}

	s.logger.Info("artist updated", slog.String("id", artist.ID))
	return artist, nil
}

func artistID(a model.Artist) string   { return a.ID }
func artistName(a model.Artist) string { return a.Name }
