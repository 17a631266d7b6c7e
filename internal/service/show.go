package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/gigboard/internal/apperror"
	"github.com/sakif/gigboard/internal/clock"
	"github.com/sakif/gigboard/internal/events"
	"github.com/sakif/gigboard/internal/listing"
	"github.com/sakif/gigboard/internal/model"
	"github.com/sakif/gigboard/internal/repository"
)

// ShowService books shows and lists the upcoming ones.
type ShowService struct {
	shows     repository.ShowRepository
	venues    repository.VenueRepository
	artists   repository.ArtistRepository
	publisher events.Publisher
	clock     clock.Clock
	boundary  listing.Boundary
	logger    *slog.Logger
}

func NewShowService(
	shows repository.ShowRepository,
	venues repository.VenueRepository,
	artists repository.ArtistRepository,
	publisher events.Publisher,
	clk clock.Clock,
	boundary listing.Boundary,
	logger *slog.Logger,
) *ShowService {
	return &ShowService{
		shows:     shows,
		venues:    venues,
		artists:   artists,
		publisher: publisher,
		clock:     clk,
		boundary:  boundary,
		logger:    logger,
	}
}

// Upcoming lists shows that have not started yet, soonest first, with the
// venue and artist names filled in.
func (s *ShowService) Upcoming(ctx context.Context) ([]listing.ShowListing, error) {
	shows, err := s.shows.ListShows(ctx)
	if err != nil {
		s.logger.Error("failed to list shows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing shows: %w", err)
	}

	venues, err := s.venues.VenuesByID(ctx, venueIDs(shows))
	if err != nil {
		s.logger.Error("failed to load venues", slog.String("error", err.Error()))
		return nil, fmt.Errorf("loading venues: %w", err)
	}
	artists, err := s.artists.ArtistsByID(ctx, artistIDs(shows))
	if err != nil {
		s.logger.Error("failed to load artists", slog.String("error", err.Error()))
		return nil, fmt.Errorf("loading artists: %w", err)
	}

	return listing.UpcomingListings(s.clock.Now(), shows, venues, artists, s.boundary)
}

// Create books a show. Both parties must exist; an unknown id is a validation
// error on its field, not NotFound, because the request itself is wrong.
// A show.listed event goes out after the show is stored; a broker failure
// is logged and does not undo the booking.
func (s *ShowService) Create(ctx context.Context, in ShowInput) (*model.Show, error) {
	artistID := strings.TrimSpace(in.ArtistID)
	venueID := strings.TrimSpace(in.VenueID)
	if artistID == "" {
		return nil, apperror.ValidationFailed("artist_id", "artist ID is required")
	}
	if venueID == "" {
		return nil, apperror.ValidationFailed("venue_id", "venue ID is required")
	}
	start, err := ParseStartTime(in.StartTime)
	if err != nil {
		return nil, err
	}

	artist, err := s.lookupArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}
	venue, err := s.lookupVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	show := &model.Show{ArtistID: artist.ID, VenueID: venue.ID, StartTime: start}
	if err := s.shows.CreateShow(ctx, show); err != nil {
		s.logger.Error("failed to create show",
			slog.String("artistID", artist.ID),
			slog.String("venueID", venue.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating show: %w", err)
	}

	s.logger.Info("show listed",
		slog.String("id", show.ID),
		slog.String("venue", venue.Name),
		slog.String("artist", artist.Name),
		slog.Time("start", show.StartTime),
	)

	ev := events.ShowListed{
		ShowID:     show.ID,
		VenueID:    venue.ID,
		VenueName:  venue.Name,
		ArtistID:   artist.ID,
		ArtistName: artist.Name,
		StartTime:  show.StartTime,
		ListedAt:   show.CreatedAt,
	}
	if err := s.publisher.PublishShowListed(ctx, ev); err != nil {
		s.logger.Warn("failed to publish show.listed",
			slog.String("id", show.ID),
			slog.String("error", err.Error()),
		)
	}

	return show, nil
}

func (s *ShowService) lookupArtist(ctx context.Context, id string) (*model.Artist, error) {
	artist, err := s.artists.GetArtist(ctx, id)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.ValidationFailed("artist_id", "no artist with ID "+id)
	}
	return artist, err
}

func (s *ShowService) lookupVenue(ctx context.Context, id string) (*model.Venue, error) {
	venue, err := s.venues.GetVenue(ctx, id)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.ValidationFailed("venue_id", "no venue with ID "+id)
	}
	return venue, err
}
