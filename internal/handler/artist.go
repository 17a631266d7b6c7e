package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/gigboard/internal/service"
)

type ArtistHandler struct {
	artists *service.ArtistService
	logger  *slog.Logger
}

func NewArtistHandler(artists *service.ArtistService, logger *slog.Logger) *ArtistHandler {
	return &ArtistHandler{artists: artists, logger: logger}
}

// HandleList returns every artist as id and name.
//
// HTTP: GET /api/artists
func (h *ArtistHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	artists, err := h.artists.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artists)
}

// HandleSearch mirrors VenueHandler.HandleSearch.
//
// HTTP: GET|POST /api/artists/search
func (h *ArtistHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	term, err := searchTerm(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.artists.Search(r.Context(), term)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HTTP: GET /api/artists/{id}
func (h *ArtistHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.artists.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// HTTP: POST /api/artists
func (h *ArtistHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.ArtistInput
	if err := decodeBody(w, r, &in, func(f url.Values) { artistInputFromForm(f, &in) }); err != nil {
		h.logger.Debug("rejected artist body", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	artist, err := h.artists.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{
		Message: "Artist " + artist.Name + " was successfully listed!",
		Data:    artist,
	})
}

// HTTP: PUT /api/artists/{id}
func (h *ArtistHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in service.ArtistInput
	if err := decodeBody(w, r, &in, func(f url.Values) { artistInputFromForm(f, &in) }); err != nil {
		writeError(w, err)
		return
	}

	artist, err := h.artists.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{
		Message: "Artist " + artist.Name + " was successfully updated!",
		Data:    artist,
	})
}
