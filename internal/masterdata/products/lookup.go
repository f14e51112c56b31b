package products

import (
	"log/slog"
	"net/http"

	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/platform/httpx"
	"github.com/inventory-pro/dashboard/internal/shared"
)

const maxLookupResults = 20

// LookupItem is one row of the product lookup response.
type LookupItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// LookupHandler answers GET /products/lookup?q= with matching products.
type LookupHandler struct {
	logger *slog.Logger
	api    *apiclient.Client
}

// NewLookupHandler constructs the handler.
func NewLookupHandler(logger *slog.Logger, api *apiclient.Client) *LookupHandler {
	return &LookupHandler{logger: logger, api: api}
}

func (h *LookupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := shared.TokenFromContext(r.Context())
	found, err := NewGateway(h.api.WithToken(token)).Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Warn("product lookup failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	items := make([]LookupItem, 0, min(len(found), maxLookupResults))
	for _, p := range found {
		if len(items) == maxLookupResults {
			break
		}
		items = append(items, LookupItem{ID: p.ID, Name: p.Name, SKU: p.SKU, Price: p.Price, Quantity: p.Quantity})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"products": items})
}
