package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/roster"
)

const maxBodyBytes = 1 << 20

// Roster is the subset of the roster store the HTTP layer needs.
type Roster interface {
	Loaded() bool
	List() []players.Player
	Get(id int64) (players.Player, bool)
	Create(number, name, position string) (players.Player, error)
	Update(id int64, number, name, position string) (players.Player, bool, error)
	Delete(id int64) (bool, error)
}

// Handler wires HTTP routes to the roster store.
type Handler struct {
	roster Roster
	logger *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(r Roster, logger *slog.Logger) *Handler {
	return &Handler{roster: r, logger: logger}
}

// ServeHTTP dispatches by path for callers that mount the handler directly.
func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case r.URL.Path == "/players" || r.URL.Path == "/players/":
		h.Players(w, r)
	case strings.HasPrefix(r.URL.Path, "/players/"):
		h.PlayerByID(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness once the roster has been loaded.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.roster == nil || !h.roster.Loaded() {
		writeError(w, r, nethttp.StatusServiceUnavailable, "roster not loaded", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// Players lists the roster on GET and adds a player on POST.
func (h *Handler) Players(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.Method {
	case nethttp.MethodGet:
		list := h.roster.List()
		writeJSON(w, nethttp.StatusOK, listResponse{Players: list, Count: len(list)}, h.logger)
	case nethttp.MethodPost:
		h.createPlayer(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

// PlayerByID serves GET, PUT and DELETE on a single player.
func (h *Handler) PlayerByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := parseID(r.URL.Path)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid player id", h.logger)
		return
	}

	switch r.Method {
	case nethttp.MethodGet:
		p, found := h.roster.Get(id)
		if !found {
			writeError(w, r, nethttp.StatusNotFound, "player not found", h.logger)
			return
		}
		writeJSON(w, nethttp.StatusOK, p, h.logger)
	case nethttp.MethodPut:
		h.updatePlayer(w, r, id)
	case nethttp.MethodDelete:
		h.deletePlayer(w, r, id)
	default:
		w.Header().Set("Allow", "GET, PUT, DELETE")
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *Handler) createPlayer(w nethttp.ResponseWriter, r *nethttp.Request) {
	req, err := decodePlayerRequest(w, r)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	p, err := h.roster.Create(string(req.Number), req.Name, req.Position)
	if err != nil {
		h.writeMutationError(w, r, err)
		return
	}
	w.Header().Set("Location", "/players/"+strconv.FormatInt(p.ID, 10))
	writeJSON(w, nethttp.StatusCreated, p, h.logger)
}

func (h *Handler) updatePlayer(w nethttp.ResponseWriter, r *nethttp.Request, id int64) {
	req, err := decodePlayerRequest(w, r)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	p, found, err := h.roster.Update(id, string(req.Number), req.Name, req.Position)
	if err != nil {
		h.writeMutationError(w, r, err)
		return
	}
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "player not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, p, h.logger)
}

func (h *Handler) deletePlayer(w nethttp.ResponseWriter, r *nethttp.Request, id int64) {
	found, err := h.roster.Delete(id)
	if err != nil {
		h.writeMutationError(w, r, err)
		return
	}
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "player not found", h.logger)
		return
	}
	w.WriteHeader(nethttp.StatusNoContent)
}

func (h *Handler) writeMutationError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	var verr *roster.ValidationError
	if errors.As(err, &verr) {
		writeError(w, r, nethttp.StatusBadRequest, verr.Error(), h.logger)
		return
	}
	logging.Error(loggerFromContext(r, h.logger), "roster mutation failed", err)
	writeError(w, r, nethttp.StatusInternalServerError, "failed to save roster", h.logger)
}

func parseID(path string) (int64, bool) {
	raw := strings.TrimPrefix(path, "/players/")
	raw = strings.TrimSuffix(raw, "/")
	raw, err := url.PathUnescape(raw)
	if err != nil || raw == "" || strings.Contains(raw, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
