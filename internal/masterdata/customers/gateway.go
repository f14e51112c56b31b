package customers

import (
	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/resource"
)

// Endpoint is the backend collection for customers.
var Endpoint = resource.Endpoint{Path: "/customers", Collection: "customers", Item: "customer"}

// NewGateway binds the customers endpoint to api.
func NewGateway(api apiclient.Requester) *resource.REST[Customer] {
	return resource.NewREST[Customer](api, Endpoint)
}
