package products

import (
	"context"
	"net/url"
	"strings"

	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/resource"
)

// Endpoint is the backend collection for products.
var Endpoint = resource.Endpoint{Path: "/products", Collection: "products", Item: "product"}

// Gateway adds server-side search to the generic product gateway.
type Gateway struct {
	*resource.REST[Product]
}

// NewGateway binds the products endpoint to api.
func NewGateway(api apiclient.Requester) *Gateway {
	return &Gateway{REST: resource.NewREST[Product](api, Endpoint)}
}

// Search asks the backend to filter products by q. A blank q lists everything.
func (g *Gateway) Search(ctx context.Context, q string) ([]Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return g.List(ctx)
	}
	return g.ListAt(ctx, Endpoint.Path+"?q="+url.QueryEscape(q))
}
