package model

import "time"

// Show pairs one Artist with one Venue at a single start instant.
//
// Shows are point events: there is no end time and no overlap checking.
// StartTime is naive local wall time; a zero StartTime marks a malformed
// record that the listing core rejects.
type Show struct {
	ID        string    `json:"id"`
	ArtistID  string    `json:"artist_id"`
	VenueID   string    `json:"venue_id"`
	StartTime time.Time `json:"start_time"`
	CreatedAt time.Time `json:"created_at"`
}
