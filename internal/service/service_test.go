package service

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/sakif/gigboard/internal/apperror"
	"github.com/sakif/gigboard/internal/clock"
	"github.com/sakif/gigboard/internal/events"
	"github.com/sakif/gigboard/internal/listing"
	"github.com/sakif/gigboard/internal/model"
)

// now is the fixed clock reading every service test runs at.
var now = time.Date(2024, 5, 24, 20, 0, 0, 0, time.Local)

// fakeStore is an in-memory record store implementing the venue, artist and
// show repositories. Setting err makes every call fail with it.
type fakeStore struct {
	venues  []model.Venue
	artists []model.Artist
	shows   []model.Show
	nextID  int
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (f *fakeStore) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeStore) CreateVenue(_ context.Context, v *model.Venue) error {
	if f.err != nil {
		return f.err
	}
	v.ID = f.id("venue")
	f.venues = append(f.venues, *v)
	return nil
}

func (f *fakeStore) GetVenue(_ context.Context, id string) (*model.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, v := range f.venues {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, apperror.NotFound("venue", id)
}

func (f *fakeStore) ListVenues(_ context.Context) ([]model.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := slices.Clone(f.venues)
	slices.SortStableFunc(out, func(a, b model.Venue) int {
		return cmp.Or(cmp.Compare(a.State, b.State), cmp.Compare(a.City, b.City),
			cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (f *fakeStore) ListVenuesInArea(ctx context.Context, city, state string) ([]model.Venue, error) {
	all, err := f.ListVenues(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Venue, 0)
	for _, v := range all {
		if v.City == city && v.State == state {
			out = append(out, v)
		}
	}
	return out, nil
}

// SearchVenues mimics SQLite: LIKE folds ASCII only.
func (f *fakeStore) SearchVenues(_ context.Context, term string) ([]model.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Venue, 0)
	for _, v := range f.venues {
		if strings.Contains(asciiLower(v.Name), asciiLower(term)) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeStore) VenuesByID(_ context.Context, ids []string) (map[string]model.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]model.Venue)
	for _, v := range f.venues {
		if slices.Contains(ids, v.ID) {
			out[v.ID] = v
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateVenue(_ context.Context, v *model.Venue) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.venues {
		if f.venues[i].ID == v.ID {
			f.venues[i] = *v
			return nil
		}
	}
	return apperror.NotFound("venue", v.ID)
}

func (f *fakeStore) DeleteVenue(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	n := len(f.venues)
	f.venues = slices.DeleteFunc(f.venues, func(v model.Venue) bool { return v.ID == id })
	if len(f.venues) == n {
		return apperror.NotFound("venue", id)
	}
	f.shows = slices.DeleteFunc(f.shows, func(s model.Show) bool { return s.VenueID == id })
	return nil
}

func (f *fakeStore) CreateArtist(_ context.Context, a *model.Artist) error {
	if f.err != nil {
		return f.err
	}
	a.ID = f.id("artist")
	f.artists = append(f.artists, *a)
	return nil
}

func (f *fakeStore) GetArtist(_ context.Context, id string) (*model.Artist, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.artists {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, apperror.NotFound("artist", id)
}

func (f *fakeStore) ListArtists(_ context.Context) ([]model.Artist, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := slices.Clone(f.artists)
	slices.SortStableFunc(out, func(a, b model.Artist) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (f *fakeStore) SearchArtists(_ context.Context, term string) ([]model.Artist, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Artist, 0)
	for _, a := range f.artists {
		if strings.Contains(asciiLower(a.Name), asciiLower(term)) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) ArtistsByID(_ context.Context, ids []string) (map[string]model.Artist, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]model.Artist)
	for _, a := range f.artists {
		if slices.Contains(ids, a.ID) {
			out[a.ID] = a
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateArtist(_ context.Context, a *model.Artist) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.artists {
		if f.artists[i].ID == a.ID {
			f.artists[i] = *a
			return nil
		}
	}
	return apperror.NotFound("artist", a.ID)
}

func (f *fakeStore) CreateShow(_ context.Context, s *model.Show) error {
	if f.err != nil {
		return f.err
	}
	s.ID = f.id("show")
	s.CreatedAt = now
	f.shows = append(f.shows, *s)
	return nil
}

func (f *fakeStore) ListShows(_ context.Context) ([]model.Show, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := slices.Clone(f.shows)
	slices.SortStableFunc(out, func(a, b model.Show) int { return a.StartTime.Compare(b.StartTime) })
	return out, nil
}

func (f *fakeStore) ListShowsByVenue(ctx context.Context, venueID string) ([]model.Show, error) {
	return f.filterShows(ctx, func(s model.Show) bool { return s.VenueID == venueID })
}

func (f *fakeStore) ListShowsByArtist(ctx context.Context, artistID string) ([]model.Show, error) {
	return f.filterShows(ctx, func(s model.Show) bool { return s.ArtistID == artistID })
}

func (f *fakeStore) filterShows(ctx context.Context, keep func(model.Show) bool) ([]model.Show, error) {
	all, err := f.ListShows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Show, 0)
	for _, s := range all {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out, nil
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// seedVenue and friends put records straight into the fake, bypassing
// validation, so tests can set up any shape of data.
func (f *fakeStore) seedVenue(name, city, state string) model.Venue {
	v := model.Venue{ID: f.id("venue"), Name: name, City: city, State: state}
	f.venues = append(f.venues, v)
	return v
}

func (f *fakeStore) seedArtist(name string) model.Artist {
	a := model.Artist{ID: f.id("artist"), Name: name, ImageLink: "https://img.example.com/" + name}
	f.artists = append(f.artists, a)
	return a
}

func (f *fakeStore) seedShow(artistID, venueID string, start time.Time) model.Show {
	s := model.Show{ID: f.id("show"), ArtistID: artistID, VenueID: venueID, StartTime: start}
	f.shows = append(f.shows, s)
	return s
}

// recordingPublisher keeps every event and can be told to fail.
type recordingPublisher struct {
	events []events.ShowListed
	err    error
}

func (p *recordingPublisher) PublishShowListed(_ context.Context, ev events.ShowListed) error {
	p.events = append(p.events, ev)
	return p.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestVenueService(t *testing.T, store *fakeStore) *VenueService {
	t.Helper()
	return NewVenueService(store, store, store, clock.NewFixed(now), listing.PastInclusive, testLogger())
}

func newTestArtistService(t *testing.T, store *fakeStore) *ArtistService {
	t.Helper()
	return NewArtistService(store, store, store, clock.NewFixed(now), listing.PastInclusive, testLogger())
}

func newTestShowService(t *testing.T, store *fakeStore, pub events.Publisher) *ShowService {
	t.Helper()
	return NewShowService(store, store, store, pub, clock.NewFixed(now), listing.PastInclusive, testLogger())
}
