package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sakif/gigboard/internal/apperror"
)

func validVenueInput() VenueInput {
	return VenueInput{
		Name:        "The Musical Hop",
		City:        "San Francisco",
		State:       "CA",
		Address:     "1015 Folsom Street",
		Genres:      "Jazz,Reggae,Swing",
		WebsiteLink: "https://www.themusicalhop.com",
	}
}

func TestVenueAreas(t *testing.T) {
	store := newFakeStore()
	hop := store.seedVenue("The Musical Hop", "San Francisco", "CA")
	park := store.seedVenue("Park Square Live Music & Coffee", "San Francisco", "CA")
	bar := store.seedVenue("The Dueling Pianos Bar", "New York", "NY")
	artist := store.seedArtist("Guns N Petals")
	store.seedShow(artist.ID, hop.ID, now.Add(-24*time.Hour))
	store.seedShow(artist.ID, hop.ID, now.Add(24*time.Hour))
	store.seedShow(artist.ID, bar.ID, now.Add(48*time.Hour))
	store.seedShow(artist.ID, bar.ID, now.Add(72*time.Hour))
	svc := newTestVenueService(t, store)

	areas, err := svc.Areas(context.Background())
	if err != nil {
		t.Fatalf("Areas() error = %v", err)
	}

	if len(areas) != 2 {
		t.Fatalf("Areas() returned %d areas, want 2", len(areas))
	}
	sf, ny := areas[0], areas[1]
	if sf.City != "San Francisco" || ny.City != "New York" {
		t.Fatalf("area order = [%s, %s], want [San Francisco, New York]", sf.City, ny.City)
	}
	if len(sf.Venues) != 2 || sf.Venues[0].ID != park.ID || sf.Venues[1].ID != hop.ID {
		t.Errorf("San Francisco venues = %+v", sf.Venues)
	}
	if sf.Venues[1].NumUpcomingShows != 1 {
		t.Errorf("Musical Hop upcoming = %d, want 1", sf.Venues[1].NumUpcomingShows)
	}
	if ny.Venues[0].NumUpcomingShows != 2 {
		t.Errorf("Dueling Pianos upcoming = %d, want 2", ny.Venues[0].NumUpcomingShows)
	}
}

func TestVenueAreas_Empty(t *testing.T) {
	svc := newTestVenueService(t, newFakeStore())

	areas, err := svc.Areas(context.Background())
	if err != nil {
		t.Fatalf("Areas() error = %v", err)
	}
	if areas == nil || len(areas) != 0 {
		t.Errorf("Areas() = %v, want empty non-nil", areas)
	}
}

func TestVenueArea_OneArea(t *testing.T) {
	store := newFakeStore()
	store.seedVenue("The Musical Hop", "San Francisco", "CA")
	store.seedVenue("The Dueling Pianos Bar", "New York", "NY")
	svc := newTestVenueService(t, store)

	areas, err := svc.Area(context.Background(), "New York", "NY")
	if err != nil {
		t.Fatalf("Area() error = %v", err)
	}
	if len(areas) != 1 || areas[0].Venues[0].Name != "The Dueling Pianos Bar" {
		t.Errorf("Area() = %+v", areas)
	}
}

func TestVenueAreas_StoreFailure(t *testing.T) {
	store := newFakeStore()
	store.err = apperror.StoreFailed("sqlite: listing venues", errors.New("disk I/O error"))
	svc := newTestVenueService(t, store)

	_, err := svc.Areas(context.Background())
	if !errors.Is(err, apperror.ErrStore) {
		t.Errorf("Areas() error = %v, want ErrStore", err)
	}
}

func TestVenueSearch(t *testing.T) {
	store := newFakeStore()
	hop := store.seedVenue("The Musical Hop", "San Francisco", "CA")
	store.seedVenue("Park Square Live Music & Coffee", "San Francisco", "CA")
	store.seedVenue("The Dueling Pianos Bar", "New York", "NY")
	store.seedVenue("MÜNCHEN HALLE", "Munich", "BY")
	artist := store.seedArtist("Guns N Petals")
	store.seedShow(artist.ID, hop.ID, now.Add(time.Hour))
	svc := newTestVenueService(t, store)

	tests := []struct {
		term      string
		wantCount int
		wantFirst string
	}{
		{"Hop", 1, "The Musical Hop"},
		{"Music", 2, "The Musical Hop"},
		{"", 4, "The Musical Hop"},
		{"nothing", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			res, err := svc.Search(context.Background(), tt.term)
			if err != nil {
				t.Fatalf("Search(%q) error = %v", tt.term, err)
			}
			if res.Count != tt.wantCount || len(res.Data) != tt.wantCount {
				t.Fatalf("Search(%q) count = %d (%d rows), want %d", tt.term, res.Count, len(res.Data), tt.wantCount)
			}
			if res.SearchTerm != tt.term {
				t.Errorf("SearchTerm = %q, want %q", res.SearchTerm, tt.term)
			}
			if tt.wantCount > 0 && res.Data[0].Name != tt.wantFirst {
				t.Errorf("first match = %q, want %q", res.Data[0].Name, tt.wantFirst)
			}
		})
	}

	res, _ := svc.Search(context.Background(), "hop")
	if res.Data[0].NumUpcomingShows != 1 {
		t.Errorf("search row upcoming = %d, want 1", res.Data[0].NumUpcomingShows)
	}
}

func TestVenueSearch_NonASCIICaseIsFolded(t *testing.T) {
	store := newFakeStore()
	store.seedVenue("MÜNCHEN HALLE", "Munich", "BY")
	svc := newTestVenueService(t, store)

	for _, term := range []string{"MÜNCHEN", "münchen", "halle"} {
		res, err := svc.Search(context.Background(), term)
		if err != nil {
			t.Fatalf("Search(%q) error = %v", term, err)
		}
		if res.Count != 1 {
			t.Errorf("Search(%q) count = %d, want 1", term, res.Count)
		}
	}
}

func TestVenueDetail(t *testing.T) {
	store := newFakeStore()
	hop := store.seedVenue("The Musical Hop", "San Francisco", "CA")
	petals := store.seedArtist("Guns N Petals")
	sax := store.seedArtist("The Wild Sax Band")
	past := store.seedShow(petals.ID, hop.ID, now.Add(-48*time.Hour))
	next := store.seedShow(sax.ID, hop.ID, now.Add(48*time.Hour))
	svc := newTestVenueService(t, store)

	d, err := svc.Detail(context.Background(), hop.ID)
	if err != nil {
		t.Fatalf("Detail() error = %v", err)
	}
	if d.Name != "The Musical Hop" {
		t.Errorf("Name = %q", d.Name)
	}
	if d.PastShowsCount != 1 || d.UpcomingShowsCount != 1 {
		t.Fatalf("counts = (%d, %d), want (1, 1)", d.PastShowsCount, d.UpcomingShowsCount)
	}
	if d.PastShows[0].ShowID != past.ID || d.PastShows[0].ArtistName != "Guns N Petals" {
		t.Errorf("past show = %+v", d.PastShows[0])
	}
	if d.UpcomingShows[0].ShowID != next.ID || d.UpcomingShows[0].ArtistName != "The Wild Sax Band" {
		t.Errorf("upcoming show = %+v", d.UpcomingShows[0])
	}
}

func TestVenueDetail_NotFound(t *testing.T) {
	svc := newTestVenueService(t, newFakeStore())

	_, err := svc.Detail(context.Background(), "missing")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Detail() error = %v, want ErrNotFound", err)
	}

	_, err = svc.Detail(context.Background(), "  ")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Detail(blank) error = %v, want ErrValidation", err)
	}
}

func TestVenueCreate(t *testing.T) {
	store := newFakeStore()
	svc := newTestVenueService(t, store)

	in := validVenueInput()
	in.Name = "  The Musical Hop  "
	in.SeekingTalent = true
	venue, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if venue.ID == "" {
		t.Error("Create() did not set ID")
	}
	if venue.Name != "The Musical Hop" {
		t.Errorf("Name = %q, want trimmed", venue.Name)
	}
	if !venue.SeekingTalent {
		t.Error("SeekingTalent lost")
	}
	if len(store.venues) != 1 {
		t.Errorf("store has %d venues, want 1", len(store.venues))
	}
}

func TestVenueCreate_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*VenueInput)
		wantField string
	}{
		{"missing name", func(in *VenueInput) { in.Name = "   " }, "name"},
		{"long name", func(in *VenueInput) { in.Name = strings.Repeat("x", MaxNameLength+1) }, "name"},
		{"missing city", func(in *VenueInput) { in.City = "" }, "city"},
		{"missing state", func(in *VenueInput) { in.State = "" }, "state"},
		{"relative website", func(in *VenueInput) { in.WebsiteLink = "themusicalhop.com" }, "website_link"},
		{"ftp image", func(in *VenueInput) { in.ImageLink = "ftp://img.example.com/a.png" }, "image_link"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			svc := newTestVenueService(t, store)
			in := validVenueInput()
			tt.mutate(&in)

			_, err := svc.Create(context.Background(), in)

			var appErr *apperror.AppError
			if !errors.As(err, &appErr) || !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("Create() error = %v, want ErrValidation", err)
			}
			if appErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", appErr.Field, tt.wantField)
			}
			if len(store.venues) != 0 {
				t.Error("invalid venue was stored")
			}
		})
	}
}

func TestVenueUpdate_OverwritesEveryField(t *testing.T) {
	store := newFakeStore()
	svc := newTestVenueService(t, store)
	in := validVenueInput()
	in.Phone = "123-123-1234"
	in.SeekingTalent = true
	venue, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	edit := VenueInput{Name: "The Musical Hop", City: "Oakland", State: "CA"}
	updated, err := svc.Update(context.Background(), venue.ID, edit)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.City != "Oakland" || updated.Phone != "" || updated.SeekingTalent || updated.WebsiteLink != "" {
		t.Errorf("Update() = %+v, want every field overwritten", updated)
	}
	if updated.ID != venue.ID {
		t.Errorf("Update() changed ID %s -> %s", venue.ID, updated.ID)
	}
}

func TestVenueUpdate_NotFound(t *testing.T) {
	svc := newTestVenueService(t, newFakeStore())

	_, err := svc.Update(context.Background(), "missing", validVenueInput())
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestVenueDelete_RemovesShows(t *testing.T) {
	store := newFakeStore()
	hop := store.seedVenue("The Musical Hop", "San Francisco", "CA")
	artist := store.seedArtist("Guns N Petals")
	store.seedShow(artist.ID, hop.ID, now.Add(time.Hour))
	svc := newTestVenueService(t, store)

	if err := svc.Delete(context.Background(), hop.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(store.venues) != 0 || len(store.shows) != 0 {
		t.Errorf("after Delete() store has %d venues, %d shows", len(store.venues), len(store.shows))
	}

	if err := svc.Delete(context.Background(), hop.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
