package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/sakif/gigboard/internal/apperror"
	"github.com/sakif/gigboard/internal/service"
)

// maxBodyBytes caps request bodies. Listing forms are a few hundred bytes.
const maxBodyBytes = 1 << 20

// decodeBody fills dst from a JSON body, or calls fromForm with the posted
// values of a form submission. A request without a Content-Type is read as
// JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, fromForm func(url.Values)) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return apperror.ValidationFailed("body", "malformed Content-Type header")
		}
		mediaType = mt
	}

	switch mediaType {
	case "", "application/json":
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			if errors.Is(err, io.EOF) {
				return apperror.ValidationFailed("body", "request body is required")
			}
			return apperror.ValidationFailed("body", "invalid JSON body")
		}
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return apperror.ValidationFailed("body", "invalid form body")
		}
		fromForm(r.PostForm)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return apperror.ValidationFailed("body", "invalid form body")
		}
		fromForm(r.PostForm)
	default:
		return apperror.ValidationFailed("body", "unsupported content type "+mediaType)
	}
	return nil
}

// formBool reads a checkbox. Browsers send "y" or "on"; API clients tend to
// send "true" or "1".
func formBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "y", "yes", "true", "on", "1":
		return true
	}
	return false
}

// formGenres joins a multi-select into the stored comma-delimited string.
func formGenres(f url.Values) string {
	return strings.Join(f["genres"], ",")
}

func venueInputFromForm(f url.Values, in *service.VenueInput) {
	*in = service.VenueInput{
		Name:               f.Get("name"),
		City:               f.Get("city"),
		State:              f.Get("state"),
		Address:            f.Get("address"),
		Phone:              f.Get("phone"),
		Genres:             formGenres(f),
		ImageLink:          f.Get("image_link"),
		FacebookLink:       f.Get("facebook_link"),
		WebsiteLink:        f.Get("website_link"),
		SeekingTalent:      formBool(f.Get("seeking_talent")),
		SeekingDescription: f.Get("seeking_description"),
	}
}

func artistInputFromForm(f url.Values, in *service.ArtistInput) {
	*in = service.ArtistInput{
		Name:               f.Get("name"),
		City:               f.Get("city"),
		State:              f.Get("state"),
		Phone:              f.Get("phone"),
		Genres:             formGenres(f),
		ImageLink:          f.Get("image_link"),
		FacebookLink:       f.Get("facebook_link"),
		WebsiteLink:        f.Get("website_link"),
		SeekingVenue:       formBool(f.Get("seeking_venue")),
		SeekingDescription: f.Get("seeking_description"),
	}
}

func showInputFromForm(f url.Values, in *service.ShowInput) {
	*in = service.ShowInput{
		ArtistID:  f.Get("artist_id"),
		VenueID:   f.Get("venue_id"),
		StartTime: f.Get("start_time"),
	}
}

// searchTerm reads search_term from the query string on GET and from the
// body on POST. An empty term is allowed and matches every record.
func searchTerm(w http.ResponseWriter, r *http.Request) (string, error) {
	if r.Method == http.MethodGet {
		return r.URL.Query().Get("search_term"), nil
	}

	var body struct {
		SearchTerm string `json:"search_term"`
	}
	err := decodeBody(w, r, &body, func(f url.Values) {
		body.SearchTerm = f.Get("search_term")
	})
	if err != nil {
		return "", err
	}
	return body.SearchTerm, nil
}
