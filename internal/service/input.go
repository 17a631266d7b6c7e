package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sakif/gigboard/internal/apperror"
	"github.com/sakif/gigboard/internal/model"
)

const MaxNameLength = 120

// VenueInput is the full set of editable venue fields. Create and Update both
// take every field: an edit overwrites the whole record.
type VenueInput struct {
	Name               string `json:"name"`
	City               string `json:"city"`
	State              string `json:"state"`
	Address            string `json:"address"`
	Phone              string `json:"phone"`
	Genres             string `json:"genres"`
	ImageLink          string `json:"image_link"`
	FacebookLink       string `json:"facebook_link"`
	WebsiteLink        string `json:"website_link"`
	SeekingTalent      bool   `json:"seeking_talent"`
	SeekingDescription string `json:"seeking_description"`
}

// ArtistInput is the full set of editable artist fields.
type ArtistInput struct {
	Name               string `json:"name"`
	City               string `json:"city"`
	State              string `json:"state"`
	Phone              string `json:"phone"`
	Genres             string `json:"genres"`
	ImageLink          string `json:"image_link"`
	FacebookLink       string `json:"facebook_link"`
	WebsiteLink        string `json:"website_link"`
	SeekingVenue       bool   `json:"seeking_venue"`
	SeekingDescription string `json:"seeking_description"`
}

// ShowInput keeps start_time as text; ParseStartTime decides what it means.
type ShowInput struct {
	ArtistID  string `json:"artist_id"`
	VenueID   string `json:"venue_id"`
	StartTime string `json:"start_time"`
}

// apply validates in and copies it onto v, leaving ID and timestamps alone.
func (in VenueInput) apply(v *model.Venue) error {
	name, city, state, err := checkIdentity(in.Name, in.City, in.State)
	if err != nil {
		return err
	}
	image, facebook, website, err := checkLinks(in.ImageLink, in.FacebookLink, in.WebsiteLink)
	if err != nil {
		return err
	}

	v.Name, v.City, v.State = name, city, state
	v.Address = strings.TrimSpace(in.Address)
	v.Phone = strings.TrimSpace(in.Phone)
	v.Genres = strings.TrimSpace(in.Genres)
	v.ImageLink, v.FacebookLink, v.WebsiteLink = image, facebook, website
	v.SeekingTalent = in.SeekingTalent
	v.SeekingDescription = strings.TrimSpace(in.SeekingDescription)
	return nil
}

func (in ArtistInput) apply(a *model.Artist) error {
	name, city, state, err := checkIdentity(in.Name, in.City, in.State)
	if err != nil {
		return err
	}
	image, facebook, website, err := checkLinks(in.ImageLink, in.FacebookLink, in.WebsiteLink)
	if err != nil {
		return err
	}

	a.Name, a.City, a.State = name, city, state
	a.Phone = strings.TrimSpace(in.Phone)
	a.Genres = strings.TrimSpace(in.Genres)
	a.ImageLink, a.FacebookLink, a.WebsiteLink = image, facebook, website
	a.SeekingVenue = in.SeekingVenue
	a.SeekingDescription = strings.TrimSpace(in.SeekingDescription)
	return nil
}

func checkIdentity(name, city, state string) (string, string, string, error) {
	name = strings.TrimSpace(name)
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)

	switch {
	case name == "":
		return "", "", "", apperror.ValidationFailed("name", "name is required")
	case len([]rune(name)) > MaxNameLength:
		return "", "", "", apperror.ValidationFailed("name",
			fmt.Sprintf("name must be %d characters or less", MaxNameLength))
	case city == "":
		return "", "", "", apperror.ValidationFailed("city", "city is required")
	case state == "":
		return "", "", "", apperror.ValidationFailed("state", "state is required")
	}
	return name, city, state, nil
}

func checkLinks(image, facebook, website string) (string, string, string, error) {
	var err error
	if image, err = checkLink("image_link", image); err != nil {
		return "", "", "", err
	}
	if facebook, err = checkLink("facebook_link", facebook); err != nil {
		return "", "", "", err
	}
	if website, err = checkLink("website_link", website); err != nil {
		return "", "", "", err
	}
	return image, facebook, website, nil
}

// checkLink accepts an empty value or an absolute http(s) URL.
func checkLink(field, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", apperror.ValidationFailed(field, field+" must be an absolute http(s) URL")
	}
	return raw, nil
}

// startTimeLayouts are tried in order. The first is what the booking form
// has always sent; the T forms come from datetime-local inputs.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// ParseStartTime reads a show start as naive local wall time. An RFC 3339
// value keeps its clock reading and loses its offset: "20:00+02:00" is
// 20:00 here.
func ParseStartTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, apperror.ValidationFailed("start_time", "start time is required")
	}

	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local), nil
	}

	return time.Time{}, apperror.ValidationFailed("start_time",
		fmt.Sprintf("start time %q is not a date and time like 2006-01-02 15:04:05", raw))
}
