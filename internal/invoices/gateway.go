package invoices

import (
	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/resource"
)

// Endpoint is the backend collection for invoices.
var Endpoint = resource.Endpoint{Path: "/invoices", Collection: "invoices", Item: "invoice"}

// NewGateway binds the invoices endpoint to api.
func NewGateway(api apiclient.Requester) *resource.REST[Invoice] {
	return resource.NewREST[Invoice](api, Endpoint)
}
