package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() ShowListed {
	return ShowListed{
		ShowID:     "show-1",
		VenueID:    "venue-1",
		VenueName:  "The Musical Hop",
		ArtistID:   "artist-1",
		ArtistName: "Guns N Petals",
		StartTime:  time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC),
		ListedAt:   time.Date(2035, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestShowListedMessage(t *testing.T) {
	now := time.Date(2035, 3, 1, 9, 0, 1, 0, time.Local)

	msg, err := showListedMessage(sampleEvent(), now)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "show-1", msg.MessageId)
	assert.Equal(t, ShowListedQueue, msg.Type)
	assert.True(t, msg.Timestamp.Equal(now))

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, "The Musical Hop", body["venue_name"])
	assert.Equal(t, "Guns N Petals", body["artist_name"])
	assert.Equal(t, "2035-04-01T20:00:00Z", body["start_time"])
}

func TestAMQPPublisher_DialFailure(t *testing.T) {
	p := NewAMQPPublisher("not-a-broker-url")

	err := p.PublishShowListed(context.Background(), sampleEvent())
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishShowListed(context.Background(), sampleEvent()))
}
