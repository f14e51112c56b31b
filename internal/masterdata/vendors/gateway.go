package vendors

import (
	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/resource"
)

// Endpoint is the backend collection for vendors.
var Endpoint = resource.Endpoint{Path: "/vendors", Collection: "vendors", Item: "vendor"}

// NewGateway binds the vendors endpoint to api.
func NewGateway(api apiclient.Requester) *resource.REST[Vendor] {
	return resource.NewREST[Vendor](api, Endpoint)
}
