package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/gigboard/internal/apperror"
	"github.com/sakif/gigboard/internal/service"
)

// VenueHandler serves the venue listing, search, detail and edit routes.
type VenueHandler struct {
	venues *service.VenueService
	logger *slog.Logger
}

func NewVenueHandler(venues *service.VenueService, logger *slog.Logger) *VenueHandler {
	return &VenueHandler{venues: venues, logger: logger}
}

// HandleAreas lists venues grouped by (city, state).
//
// HTTP: GET /api/venues[?city=...&state=...]
//
// With both city and state set, only that area is returned.
func (h *VenueHandler) HandleAreas(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	city, state := q.Get("city"), q.Get("state")

	var (
		areas any
		err   error
	)
	switch {
	case city == "" && state == "":
		areas, err = h.venues.Areas(r.Context())
	case city == "" || state == "":
		err = apperror.ValidationFailed("city", "city and state must be given together")
	default:
		areas, err = h.venues.Area(r.Context(), city, state)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, areas)
}

// HandleSearch finds venues by a case-insensitive substring of their name.
//
// HTTP: GET /api/venues/search?search_term=...
// HTTP: POST /api/venues/search   (form or JSON with search_term)
func (h *VenueHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	term, err := searchTerm(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.venues.Search(r.Context(), term)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleDetail returns the venue page with its past and upcoming shows.
//
// HTTP: GET /api/venues/{id}
func (h *VenueHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.venues.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// HandleCreate lists a new venue.
//
// HTTP: POST /api/venues
func (h *VenueHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.VenueInput
	if err := decodeBody(w, r, &in, func(f url.Values) { venueInputFromForm(f, &in) }); err != nil {
		h.logger.Debug("rejected venue body", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	venue, err := h.venues.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{
		Message: "Venue " + venue.Name + " was successfully listed!",
		Data:    venue,
	})
}

// HandleUpdate overwrites every editable field of a venue.
//
// HTTP: PUT /api/venues/{id}
func (h *VenueHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in service.VenueInput
	if err := decodeBody(w, r, &in, func(f url.Values) { venueInputFromForm(f, &in) }); err != nil {
		writeError(w, err)
		return
	}

	venue, err := h.venues.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{
		Message: "Venue " + venue.Name + " was successfully updated!",
		Data:    venue,
	})
}

// HandleDelete removes a venue and every show booked there.
//
// HTTP: DELETE /api/venues/{id}
func (h *VenueHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.venues.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
