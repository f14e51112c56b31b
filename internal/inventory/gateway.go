package inventory

import (
	"context"
	"fmt"

	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/resource"
)

// Endpoint is the backend collection for transactions.
var Endpoint = resource.Endpoint{Path: "/transactions", Collection: "transactions", Item: "transaction"}

// Gateway records new movements through the type-specific routes and uses
// the generic routes for everything else.
type Gateway struct {
	*resource.REST[Transaction]
}

// NewGateway binds the transactions endpoint to api.
func NewGateway(api apiclient.Requester) *Gateway {
	return &Gateway{REST: resource.NewREST[Transaction](api, Endpoint)}
}

// Create posts to /transactions/purchase, /sale or /adjustment.
func (g *Gateway) Create(ctx context.Context, payload any) (Transaction, error) {
	m, ok := payload.(Movement)
	if !ok {
		return g.REST.Create(ctx, payload)
	}
	switch m.Type {
	case TransactionTypeStockIn:
		return g.Purchase(ctx, m)
	case TransactionTypeStockOut:
		return g.Sale(ctx, m)
	case TransactionTypeAdjustment:
		return g.Adjust(ctx, m)
	default:
		return Transaction{}, fmt.Errorf("%w: %q", ErrUnknownType, m.Type)
	}
}

// Purchase records stock received from a vendor.
func (g *Gateway) Purchase(ctx context.Context, m Movement) (Transaction, error) {
	m.Customer = ""
	return g.CreateAt(ctx, Endpoint.Path+"/purchase", m)
}

// Sale records stock sold to a customer.
func (g *Gateway) Sale(ctx context.Context, m Movement) (Transaction, error) {
	m.Vendor = ""
	return g.CreateAt(ctx, Endpoint.Path+"/sale", m)
}

// Adjust records a manual correction. Only product, quantity and note are sent.
func (g *Gateway) Adjust(ctx context.Context, m Movement) (Transaction, error) {
	body := Movement{Product: m.Product, Quantity: m.Quantity, Note: m.Note}
	return g.CreateAt(ctx, Endpoint.Path+"/adjustment", body)
}
