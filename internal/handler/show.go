package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/sakif/gigboard/internal/service"
)

type ShowHandler struct {
	shows  *service.ShowService
	logger *slog.Logger
}

func NewShowHandler(shows *service.ShowService, logger *slog.Logger) *ShowHandler {
	return &ShowHandler{shows: shows, logger: logger}
}

// HandleUpcoming lists shows that have not started, soonest first.
//
// HTTP: GET /api/shows
func (h *ShowHandler) HandleUpcoming(w http.ResponseWriter, r *http.Request) {
	shows, err := h.shows.Upcoming(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shows)
}

// HandleCreate books an artist at a venue.
//
// HTTP: POST /api/shows
//
// start_time is local wall time, e.g. "2035-04-01 20:00:00".
func (h *ShowHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.ShowInput
	if err := decodeBody(w, r, &in, func(f url.Values) { showInputFromForm(f, &in) }); err != nil {
		h.logger.Debug("rejected show body", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	show, err := h.shows.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{
		Message: "Show was successfully listed!",
		Data:    show,
	})
}
