package listing

import (
	"fmt"
	"time"

	"github.com/sakif/gigboard/internal/apperror"
	"github.com/sakif/gigboard/internal/model"
)

// VenueShow is a show seen from a venue page: it names the artist.
type VenueShow struct {
	ShowID          string    `json:"show_id"`
	ArtistID        string    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// ArtistShow is a show seen from an artist page: it names the venue.
type ArtistShow struct {
	ShowID         string    `json:"show_id"`
	VenueID        string    `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link"`
	StartTime      time.Time `json:"start_time"`
}

// VenueDetail is a venue with its shows split around now.
type VenueDetail struct {
	model.Venue
	PastShows          []VenueShow `json:"past_shows"`
	UpcomingShows      []VenueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// ArtistDetail is an artist with its shows split around now.
type ArtistDetail struct {
	model.Artist
	PastShows          []ArtistShow `json:"past_shows"`
	UpcomingShows      []ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

// AssembleVenue builds the venue page. artists must contain every artist
// referenced by shows; a show pointing at a missing artist makes the
// collection malformed and the call fails with a validation error.
//
// Looking up the venue itself (and reporting NotFound) is the caller's job:
// this function only ever sees a venue that exists.
func AssembleVenue(now time.Time, venue model.Venue, shows []model.Show, artists map[string]model.Artist, b Boundary) (*VenueDetail, error) {
	lines := make([]VenueShow, 0, len(shows))
	for _, s := range shows {
		if s.VenueID != venue.ID {
			return nil, apperror.ValidationFailed("venue_id",
				fmt.Sprintf("show %s belongs to venue %s, not %s", s.ID, s.VenueID, venue.ID))
		}
		a, ok := artists[s.ArtistID]
		if !ok {
			return nil, apperror.ValidationFailed("artist_id",
				fmt.Sprintf("show %s references unknown artist %s", s.ID, s.ArtistID))
		}
		lines = append(lines, VenueShow{
			ShowID:          s.ID,
			ArtistID:        a.ID,
			ArtistName:      a.Name,
			ArtistImageLink: a.ImageLink,
			StartTime:       s.StartTime,
		})
	}

	w, err := PartitionBy(now, lines, func(l VenueShow) time.Time { return l.StartTime }, b)
	if err != nil {
		return nil, err
	}

	return &VenueDetail{
		Venue:              venue,
		PastShows:          w.Past,
		UpcomingShows:      w.Upcoming,
		PastShowsCount:     w.PastCount,
		UpcomingShowsCount: w.UpcomingCount,
	}, nil
}

// AssembleArtist is AssembleVenue from the artist side.
func AssembleArtist(now time.Time, artist model.Artist, shows []model.Show, venues map[string]model.Venue, b Boundary) (*ArtistDetail, error) {
	lines := make([]ArtistShow, 0, len(shows))
	for _, s := range shows {
		if s.ArtistID != artist.ID {
			return nil, apperror.ValidationFailed("artist_id",
				fmt.Sprintf("show %s belongs to artist %s, not %s", s.ID, s.ArtistID, artist.ID))
		}
		v, ok := venues[s.VenueID]
		if !ok {
			return nil, apperror.ValidationFailed("venue_id",
				fmt.Sprintf("show %s references unknown venue %s", s.ID, s.VenueID))
		}
		lines = append(lines, ArtistShow{
			ShowID:         s.ID,
			VenueID:        v.ID,
			VenueName:      v.Name,
			VenueImageLink: v.ImageLink,
			StartTime:      s.StartTime,
		})
	}

	w, err := PartitionBy(now, lines, func(l ArtistShow) time.Time { return l.StartTime }, b)
	if err != nil {
		return nil, err
	}

	return &ArtistDetail{
		Artist:             artist,
		PastShows:          w.Past,
		UpcomingShows:      w.Upcoming,
		PastShowsCount:     w.PastCount,
		UpcomingShowsCount: w.UpcomingCount,
	}, nil
}

// ShowListing is one row of the public shows page.
type ShowListing struct {
	ShowID          string    `json:"show_id"`
	VenueID         string    `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        string    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// UpcomingListings keeps only the upcoming shows and names both parties.
// Order follows shows.
func UpcomingListings(now time.Time, shows []model.Show, venues map[string]model.Venue, artists map[string]model.Artist, b Boundary) ([]ShowListing, error) {
	w, err := PartitionShows(now, shows, b)
	if err != nil {
		return nil, err
	}

	out := make([]ShowListing, 0, w.UpcomingCount)
	for _, s := range w.Upcoming {
		v, ok := venues[s.VenueID]
		if !ok {
			return nil, apperror.ValidationFailed("venue_id",
				fmt.Sprintf("show %s references unknown venue %s", s.ID, s.VenueID))
		}
		a, ok := artists[s.ArtistID]
		if !ok {
			return nil, apperror.ValidationFailed("artist_id",
				fmt.Sprintf("show %s references unknown artist %s", s.ID, s.ArtistID))
		}
		out = append(out, ShowListing{
			ShowID:          s.ID,
			VenueID:         v.ID,
			VenueName:       v.Name,
			ArtistID:        a.ID,
			ArtistName:      a.Name,
			ArtistImageLink: a.ImageLink,
			StartTime:       s.StartTime,
		})
	}
	return out, nil
}
