// Package resource holds the uniform gateway contract every backend resource
// is reached through.
package resource

import (
	"context"
	"errors"
	"strconv"
)

// ErrMissingKey is returned when an entity without an identifier is updated or removed.
var ErrMissingKey = errors.New("resource: missing identifier")

// Entity is anything the backend identifies by a stable key.
type Entity interface {
	Key() string
}

// Versioned payloads carry the revision the editor last saw. Gateways turn it
// into an If-Match precondition.
type Versioned interface {
	Revision() (int64, bool)
}

// Gateway is the five-operation contract for one backend resource.
type Gateway[T Entity] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, payload any) (T, error)
	Update(ctx context.Context, id string, payload any) (T, error)
	Remove(ctx context.Context, id string) error
}

// Rev is embedded by entities and payloads that expose the backend __v counter.
type Rev struct {
	V *int64 `json:"__v,omitempty"`
}

// Revision implements Versioned.
func (r Rev) Revision() (int64, bool) {
	if r.V == nil {
		return 0, false
	}
	return *r.V, true
}

// At returns a Rev pinned to v.
func At(v int64) Rev {
	return Rev{V: &v}
}

// Token renders the revision for a hidden form field, empty when unknown.
func (r Rev) Token() string {
	if r.V == nil {
		return ""
	}
	return strconv.FormatInt(*r.V, 10)
}
