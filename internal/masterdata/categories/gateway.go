package categories

import (
	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/resource"
)

// Endpoint is the backend collection for categories.
var Endpoint = resource.Endpoint{Path: "/categories", Collection: "categories", Item: "category"}

// NewGateway binds the categories endpoint to api.
func NewGateway(api apiclient.Requester) *resource.REST[Category] {
	return resource.NewREST[Category](api, Endpoint)
}
