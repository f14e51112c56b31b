package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
)

// Endpoint names a REST collection and the envelope keys its responses use.
type Endpoint struct {
	Path       string
	Collection string
	Item       string
}

// ItemPath returns the path of a single member. The id is path-escaped.
func (e Endpoint) ItemPath(id string) string {
	return strings.TrimRight(e.Path, "/") + "/" + url.PathEscape(id)
}

// REST is the generic Gateway over the backend's conventional CRUD routes.
type REST[T Entity] struct {
	api      apiclient.Requester
	endpoint Endpoint
}

// NewREST binds an endpoint to a credential-bearing requester.
func NewREST[T Entity](api apiclient.Requester, endpoint Endpoint) *REST[T] {
	return &REST[T]{api: api, endpoint: endpoint}
}

// Endpoint returns the bound endpoint.
func (g *REST[T]) Endpoint() Endpoint {
	return g.endpoint
}

// Requester exposes the underlying client to gateways that add routes.
func (g *REST[T]) Requester() apiclient.Requester {
	return g.api
}

func (g *REST[T]) List(ctx context.Context) ([]T, error) {
	return g.ListAt(ctx, g.endpoint.Path)
}

// ListAt lists from an alternative path that answers with the same envelope.
func (g *REST[T]) ListAt(ctx context.Context, path string) ([]T, error) {
	var raw json.RawMessage
	if err := g.api.Do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	var items []T
	if err := Unwrap(raw, g.endpoint.Collection, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", g.endpoint.Collection, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (g *REST[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if id == "" {
		return zero, ErrMissingKey
	}
	return g.send(ctx, http.MethodGet, g.endpoint.ItemPath(id), nil)
}

func (g *REST[T]) Create(ctx context.Context, payload any) (T, error) {
	return g.CreateAt(ctx, g.endpoint.Path, payload)
}

// CreateAt posts to an alternative path and decodes the item envelope.
func (g *REST[T]) CreateAt(ctx context.Context, path string, payload any) (T, error) {
	return g.send(ctx, http.MethodPost, path, payload)
}

func (g *REST[T]) Update(ctx context.Context, id string, payload any) (T, error) {
	var zero T
	if id == "" {
		return zero, ErrMissingKey
	}
	var opts []apiclient.RequestOption
	if v, ok := payload.(Versioned); ok {
		if rev, ok := v.Revision(); ok {
			opts = append(opts, apiclient.IfMatch(rev))
		}
	}
	return g.send(ctx, http.MethodPut, g.endpoint.ItemPath(id), payload, opts...)
}

func (g *REST[T]) Remove(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingKey
	}
	return g.api.Do(ctx, http.MethodDelete, g.endpoint.ItemPath(id), nil, nil)
}

func (g *REST[T]) send(ctx context.Context, method, path string, payload any, opts ...apiclient.RequestOption) (T, error) {
	var zero T
	var raw json.RawMessage
	if err := g.api.Do(ctx, method, path, payload, &raw, opts...); err != nil {
		return zero, err
	}
	var item T
	if err := Unwrap(raw, g.endpoint.Item, &item); err != nil {
		return zero, fmt.Errorf("decode %s: %w", g.endpoint.Item, err)
	}
	return item, nil
}

// Unwrap decodes raw into out, looking inside the named envelope key first.
// Bodies without the key are decoded as they are.
func Unwrap(raw json.RawMessage, key string, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if key != "" {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(raw, &envelope); err == nil {
			if inner, ok := envelope[key]; ok {
				return json.Unmarshal(inner, out)
			}
		}
	}
	return json.Unmarshal(raw, out)
}
