package listing

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/gigboard/internal/apperror"
	"github.com/sakif/gigboard/internal/model"
)

func TestAssembleVenue(t *testing.T) {
	v := venue("v1", "Blue Room", "Austin", "TX")
	artists := map[string]model.Artist{
		"a1": {ID: "a1", Name: "Guns N Petals", ImageLink: "https://img/a1.jpg"},
		"a2": {ID: "a2", Name: "Matt Quevedo", ImageLink: "https://img/a2.jpg"},
	}
	shows := []model.Show{
		show("s1", "v1", "a1", t0.Add(-24*time.Hour)),
		show("s2", "v1", "a2", t0.Add(24*time.Hour)),
		show("s3", "v1", "a1", t0.Add(48*time.Hour)),
	}

	d, err := AssembleVenue(t0, v, shows, artists, PastInclusive)
	require.NoError(t, err)

	assert.Equal(t, "Blue Room", d.Name)
	assert.Equal(t, 1, d.PastShowsCount)
	assert.Equal(t, 2, d.UpcomingShowsCount)
	require.Len(t, d.PastShows, 1)
	assert.Equal(t, VenueShow{
		ShowID:          "s1",
		ArtistID:        "a1",
		ArtistName:      "Guns N Petals",
		ArtistImageLink: "https://img/a1.jpg",
		StartTime:       t0.Add(-24 * time.Hour),
	}, d.PastShows[0])
	assert.Equal(t, "a2", d.UpcomingShows[0].ArtistID)
	assert.Equal(t, "s3", d.UpcomingShows[1].ShowID)
}

func TestAssembleVenue_NoShows(t *testing.T) {
	d, err := AssembleVenue(t0, venue("v1", "Blue Room", "Austin", "TX"), nil, nil, PastInclusive)
	require.NoError(t, err)

	body, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"past_shows":[]`)
	assert.Contains(t, string(body), `"upcoming_shows":[]`)
	assert.Contains(t, string(body), `"name":"Blue Room"`)
}

func TestAssembleVenue_UnknownArtist(t *testing.T) {
	shows := []model.Show{show("s1", "v1", "ghost", t0)}

	_, err := AssembleVenue(t0, venue("v1", "Blue Room", "Austin", "TX"), shows, map[string]model.Artist{}, PastInclusive)
	assert.True(t, errors.Is(err, apperror.ErrValidation), "got %v", err)
}

func TestAssembleVenue_ForeignShow(t *testing.T) {
	shows := []model.Show{show("s1", "other", "a1", t0)}
	artists := map[string]model.Artist{"a1": {ID: "a1"}}

	_, err := AssembleVenue(t0, venue("v1", "Blue Room", "Austin", "TX"), shows, artists, PastInclusive)
	assert.True(t, errors.Is(err, apperror.ErrValidation), "got %v", err)
}

func TestAssembleArtist(t *testing.T) {
	a := model.Artist{ID: "a1", Name: "The Wild Sax Band"}
	venues := map[string]model.Venue{
		"v1": {ID: "v1", Name: "The Musical Hop", ImageLink: "https://img/v1.jpg"},
		"v2": {ID: "v2", Name: "Park Square", ImageLink: "https://img/v2.jpg"},
	}
	shows := []model.Show{
		show("s1", "v2", "a1", t0.Add(time.Hour)),
		show("s2", "v1", "a1", t0),
	}

	d, err := AssembleArtist(t0, a, shows, venues, PastInclusive)
	require.NoError(t, err)

	assert.Equal(t, 1, d.PastShowsCount)
	assert.Equal(t, 1, d.UpcomingShowsCount)
	assert.Equal(t, "The Musical Hop", d.PastShows[0].VenueName)
	assert.Equal(t, "https://img/v2.jpg", d.UpcomingShows[0].VenueImageLink)
}

func TestAssembleArtist_MissingStartTime(t *testing.T) {
	a := model.Artist{ID: "a1"}
	venues := map[string]model.Venue{"v1": {ID: "v1"}}
	shows := []model.Show{{ID: "s1", VenueID: "v1", ArtistID: "a1"}}

	_, err := AssembleArtist(t0, a, shows, venues, PastInclusive)
	assert.True(t, errors.Is(err, apperror.ErrValidation), "got %v", err)
}

func TestUpcomingListings(t *testing.T) {
	venues := map[string]model.Venue{"v1": {ID: "v1", Name: "Blue Room"}}
	artists := map[string]model.Artist{"a1": {ID: "a1", Name: "Band", ImageLink: "img"}}
	shows := []model.Show{
		show("old", "v1", "a1", t0.Add(-time.Hour)),
		show("now", "v1", "a1", t0),
		show("soon", "v1", "a1", t0.Add(time.Hour)),
	}

	got, err := UpcomingListings(t0, shows, venues, artists, PastInclusive)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ShowListing{
		ShowID:          "soon",
		VenueID:         "v1",
		VenueName:       "Blue Room",
		ArtistID:        "a1",
		ArtistName:      "Band",
		ArtistImageLink: "img",
		StartTime:       t0.Add(time.Hour),
	}, got[0])

	got, err = UpcomingListings(t0, shows, venues, artists, UpcomingInclusive)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestUpcomingListings_PastShowWithUnknownVenueIsIgnored(t *testing.T) {
	// Only listed rows need both parties; a past row is dropped before lookup.
	shows := []model.Show{show("old", "gone", "a1", t0.Add(-time.Hour))}

	got, err := UpcomingListings(t0, shows, nil, nil, PastInclusive)
	require.NoError(t, err)
	assert.Empty(t, got)
}
