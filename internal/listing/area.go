package listing

import (
	"time"

	"github.com/sakif/gigboard/internal/model"
)

// Summary is one line of a listing or search result: a venue or artist with
// its number of upcoming shows.
type Summary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// Area is every venue sharing one exact (city, state) pair.
type Area struct {
	City   string    `json:"city"`
	State  string    `json:"state"`
	Venues []Summary `json:"venues"`
}

type areaKey struct {
	city, state string
}

// GroupByArea groups venues by their literal (city, state) pair and counts
// each venue's upcoming shows.
//
// Keys compare byte for byte: "Austin" and "austin " are different areas.
// Areas come out in the order their first venue appears in venues, and venues
// keep their input order inside an area, so a caller wanting a sorted listing
// sorts the input (the store lists venues by state, city, name). An area
// exists only because a venue created it, so no area is ever empty.
//
// showsByVenue maps venue id to that venue's shows; a venue with no entry has
// zero shows.
func GroupByArea(now time.Time, venues []model.Venue, showsByVenue map[string][]model.Show, b Boundary) ([]Area, error) {
	areas := make([]Area, 0)
	index := make(map[areaKey]int)

	for _, v := range venues {
		w, err := PartitionShows(now, showsByVenue[v.ID], b)
		if err != nil {
			return nil, err
		}

		key := areaKey{city: v.City, state: v.State}
		i, ok := index[key]
		if !ok {
			i = len(areas)
			index[key] = i
			areas = append(areas, Area{City: v.City, State: v.State, Venues: make([]Summary, 0, 1)})
		}

		areas[i].Venues = append(areas[i].Venues, Summary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: w.UpcomingCount,
		})
	}

	return areas, nil
}

// Summarize pairs every item with its upcoming show count, keeping input
// order. showsByID is keyed the same way idOf keys items.
func Summarize[T any](now time.Time, items []T, idOf, nameOf func(T) string, showsByID map[string][]model.Show, b Boundary) ([]Summary, error) {
	out := make([]Summary, 0, len(items))
	for _, item := range items {
		id := idOf(item)
		w, err := PartitionShows(now, showsByID[id], b)
		if err != nil {
			return nil, err
		}
		out = append(out, Summary{ID: id, Name: nameOf(item), NumUpcomingShows: w.UpcomingCount})
	}
	return out, nil
}

// ShowsByVenue indexes shows by venue id, keeping input order per venue.
func ShowsByVenue(shows []model.Show) map[string][]model.Show {
	return indexShows(shows, func(s model.Show) string { return s.VenueID })
}

// ShowsByArtist indexes shows by artist id, keeping input order per artist.
func ShowsByArtist(shows []model.Show) map[string][]model.Show {
	return indexShows(shows, func(s model.Show) string { return s.ArtistID })
}

func indexShows(shows []model.Show, key func(model.Show) string) map[string][]model.Show {
	out := make(map[string][]model.Show)
	for _, s := range shows {
		k := key(s)
		out[k] = append(out[k], s)
	}
	return out
}
