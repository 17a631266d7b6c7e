// Package model defines the records persisted by the store and passed
// between the layers of the application.
//
// The structs are plain data: no methods that reach the database, no
// derived state. Whether a show is past or upcoming is never stored here;
// the listing package derives it against a reference instant.
package model

import "time"

// Venue is a place that can host shows.
//
// Genres is kept exactly as submitted (a single delimited string). Nothing
// validates or normalises its contents.
type Venue struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Address            string    `json:"address"`
	Phone              string    `json:"phone"`
	Genres             string    `json:"genres"`
	ImageLink          string    `json:"image_link"`
	FacebookLink       string    `json:"facebook_link"`
	WebsiteLink        string    `json:"website_link"`
	SeekingTalent      bool      `json:"seeking_talent"`
	SeekingDescription string    `json:"seeking_description"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
