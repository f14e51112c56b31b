package report

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/inventory-pro/dashboard/internal/platform/httpx"
)

// PingHandler reports whether PDF rendering is reachable.
type PingHandler struct {
	client *Client
	logger *slog.Logger
}

// NewPingHandler creates the handler.
func NewPingHandler(client *Client, logger *slog.Logger) *PingHandler {
	return &PingHandler{client: client, logger: logger}
}

func (h *PingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := h.client.Ping(r.Context())
	switch {
	case errors.Is(err, ErrDisabled):
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "disabled"})
	case err != nil:
		h.logger.Warn("gotenberg ping failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusServiceUnavailable, "Service Unavailable", "PDF rendering is unavailable.")
	default:
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
