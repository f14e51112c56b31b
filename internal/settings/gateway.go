package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/resource"
)

// Endpoint is the backend collection for settings.
var Endpoint = resource.Endpoint{Path: "/settings", Collection: "settings", Item: "setting"}

// Gateway maps the settings upsert API onto resource.Gateway. The backend
// has no item GET and writes both creates and updates through one POST.
type Gateway struct {
	rest *resource.REST[Setting]
}

// NewGateway binds the settings endpoint to api.
func NewGateway(api apiclient.Requester) *Gateway {
	return &Gateway{rest: resource.NewREST[Setting](api, Endpoint)}
}

// List fetches every setting.
func (g *Gateway) List(ctx context.Context) ([]Setting, error) {
	return g.rest.List(ctx)
}

// Get finds key in a fresh listing.
func (g *Gateway) Get(ctx context.Context, key string) (Setting, error) {
	items, err := g.rest.List(ctx)
	if err != nil {
		return Setting{}, err
	}
	for _, item := range items {
		if item.Name == key {
			return item, nil
		}
	}
	return Setting{}, &apiclient.APIError{Status: http.StatusNotFound, Message: fmt.Sprintf("Setting %q not found", key)}
}

// Create upserts the payload.
func (g *Gateway) Create(ctx context.Context, body any) (Setting, error) {
	saved, err := g.rest.Create(ctx, body)
	if err != nil {
		return Setting{}, err
	}
	return fill(saved, body), nil
}

// Update upserts the payload; key must match the payload key.
func (g *Gateway) Update(ctx context.Context, key string, body any) (Setting, error) {
	if p, ok := body.(payload); ok && p.Key != key {
		return Setting{}, fmt.Errorf("settings: key %q cannot be renamed to %q", key, p.Key)
	}
	return g.Create(ctx, body)
}

// Remove deletes key.
func (g *Gateway) Remove(ctx context.Context, key string) error {
	return g.rest.Remove(ctx, key)
}

// fill covers backends that answer an upsert without echoing the entry.
func fill(saved Setting, sent any) Setting {
	p, ok := sent.(payload)
	if !ok {
		return saved
	}
	if saved.Name == "" {
		saved.Name = p.Key
	}
	if len(saved.Value) == 0 {
		saved.Value = rawOf(p.Value)
	}
	return saved
}

func rawOf(v any) json.RawMessage {
	if raw, ok := v.(json.RawMessage); ok {
		return raw
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
