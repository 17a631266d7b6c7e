// Package events announces new listings to other systems over RabbitMQ.
//
// Publishing happens after the show is committed and is best effort: the
// listing exists whether or not the broker heard about it.
package events

import (
	"context"
	"time"
)

// ShowListedQueue is the durable queue ShowListed events are sent to.
const ShowListedQueue = "show.listed"

// ShowListed is published once per newly created show.
type ShowListed struct {
	ShowID     string    `json:"show_id"`
	VenueID    string    `json:"venue_id"`
	VenueName  string    `json:"venue_name"`
	ArtistID   string    `json:"artist_id"`
	ArtistName string    `json:"artist_name"`
	StartTime  time.Time `json:"start_time"`
	ListedAt   time.Time `json:"listed_at"`
}

type Publisher interface {
	PublishShowListed(ctx context.Context, ev ShowListed) error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishShowListed(context.Context, ShowListed) error { return nil }
