// Package listeditor implements the list-with-modal-editor page pattern: a
// Controller that owns one page instance's collection, a Modal that holds the
// draft being edited, a Store that keeps instances alive between requests and a
// generic chi Page that binds them to routes.
package listeditor

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/inventory-pro/dashboard/internal/resource"
)

// State is the load state of a Controller.
type State string

const (
	StateIdle       State = "idle"
	StateLoading    State = "loading"
	StateLoaded     State = "loaded"
	StateLoadFailed State = "load_failed"
)

// Draft is what a Modal edits. An empty DraftKey means create.
type Draft interface {
	DraftKey() string
	Payload() any
}

// Snapshot is the serialisable state of a Controller instance.
type Snapshot[T resource.Entity] struct {
	State         State  `json:"state"`
	Items         []T    `json:"items"`
	Error         string `json:"error,omitempty"`
	PendingDelete string `json:"pendingDelete,omitempty"`
}

// Controller owns the collection shown by one page instance. Members are
// unique by Key. It is not safe for concurrent use.
type Controller[T resource.Entity] struct {
	gateway       resource.Gateway[T]
	searchText    func(T) []string
	state         State
	saving        bool
	items         []T
	errMsg        string
	pendingDelete string
}

// New builds an idle Controller. searchText returns the fields a search
// term is matched against.
func New[T resource.Entity](gateway resource.Gateway[T], searchText func(T) []string) *Controller[T] {
	return &Controller[T]{gateway: gateway, searchText: searchText, state: StateIdle, items: []T{}}
}

// Mount loads the collection from the backend in server order.
func (c *Controller[T]) Mount(ctx context.Context) error {
	c.state = StateLoading
	c.errMsg = ""
	c.pendingDelete = ""
	items, err := c.gateway.List(ctx)
	if err != nil {
		c.state = StateLoadFailed
		c.items = []T{}
		c.errMsg = Message(err)
		return err
	}
	c.items = dedupe(items)
	c.state = StateLoaded
	return nil
}

// State reports the load state.
func (c *Controller[T]) State() State { return c.state }

// Saving reports whether a save is in flight.
func (c *Controller[T]) Saving() bool { return c.saving }

// Err is the inline error text of the last failed operation.
func (c *Controller[T]) Err() string { return c.errMsg }

// ClearErr dismisses the inline error.
func (c *Controller[T]) ClearErr() { c.errMsg = "" }

// Len is the collection size.
func (c *Controller[T]) Len() int { return len(c.items) }

// Items returns a copy of the collection.
func (c *Controller[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Find returns the member with key id.
func (c *Controller[T]) Find(id string) (T, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Search filters the collection by a case-insensitive substring match over
// the search fields. A blank term returns everything. State is not touched.
func (c *Controller[T]) Search(term string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return c.Items()
	}
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if c.matches(item, term) {
			out = append(out, item)
		}
	}
	return out
}

func (c *Controller[T]) matches(item T, term string) bool {
	if c.searchText == nil {
		return strings.Contains(strings.ToLower(item.Key()), term)
	}
	for _, field := range c.searchText(item) {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// OpenEdit fetches the freshest copy of id for the editor. When the fetch
// fails the held row is used instead.
func (c *Controller[T]) OpenEdit(ctx context.Context, id string) (T, error) {
	fresh, err := c.gateway.Get(ctx, id)
	if err == nil {
		return fresh, nil
	}
	if held, ok := c.Find(id); ok {
		return held, nil
	}
	var zero T
	return zero, errors.Join(ErrNotInCollection, err)
}

// Save creates or updates depending on whether the draft has a key. A created
// entity lands at the head, once, even when its key was already held; an
// updated one replaces its member in place. Failures, including a create
// answered without an id, leave the collection untouched.
func (c *Controller[T]) Save(ctx context.Context, draft Draft) (T, error) {
	c.saving = true
	defer func() { c.saving = false }()

	var (
		saved T
		err   error
	)
	key := draft.DraftKey()
	if key == "" {
		saved, err = c.gateway.Create(ctx, draft.Payload())
	} else {
		saved, err = c.gateway.Update(ctx, key, draft.Payload())
	}
	if err == nil && key == "" && saved.Key() == "" {
		err = ErrUnkeyedResult
	}
	if err != nil {
		c.errMsg = Message(err)
		return saved, err
	}
	c.errMsg = ""

	if key == "" {
		if i := c.indexOf(saved.Key()); i >= 0 {
			c.items = slices.Delete(c.items, i, i+1)
		}
		c.items = append([]T{saved}, c.items...)
		return saved, nil
	}
	if i := c.indexOf(key); i >= 0 {
		c.items[i] = saved
	} else {
		c.items = append(c.items, saved)
	}
	return saved, nil
}

// RequestDelete opens the confirmation step for id.
func (c *Controller[T]) RequestDelete(id string) (T, error) {
	item, ok := c.Find(id)
	if !ok {
		return item, ErrNotInCollection
	}
	c.pendingDelete = id
	return item, nil
}

// PendingDelete is the id awaiting confirmation, if any.
func (c *Controller[T]) PendingDelete() string { return c.pendingDelete }

// CancelDelete closes the confirmation step.
func (c *Controller[T]) CancelDelete() { c.pendingDelete = "" }

// ConfirmDelete removes id after a matching RequestDelete. The member is only
// dropped once the backend accepted the delete.
func (c *Controller[T]) ConfirmDelete(ctx context.Context, id string) error {
	if id == "" || c.pendingDelete != id {
		return ErrDeleteNotConfirmed
	}
	c.pendingDelete = ""
	if err := c.gateway.Remove(ctx, id); err != nil {
		c.errMsg = Message(err)
		return err
	}
	c.errMsg = ""
	if i := c.indexOf(id); i >= 0 {
		c.items = append(c.items[:i:i], c.items[i+1:]...)
	}
	return nil
}

// Snapshot captures the instance for the Store.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	return Snapshot[T]{
		State:         c.state,
		Items:         c.Items(),
		Error:         c.errMsg,
		PendingDelete: c.pendingDelete,
	}
}

// Restore replaces the instance state with a stored snapshot.
func (c *Controller[T]) Restore(s Snapshot[T]) {
	c.state = s.State
	if c.state == "" {
		c.state = StateIdle
	}
	c.items = dedupe(s.Items)
	c.errMsg = s.Error
	c.pendingDelete = s.PendingDelete
}

func (c *Controller[T]) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range c.items {
		if item.Key() == id {
			return i
		}
	}
	return -1
}

// dedupe keeps the first occurrence of each key.
func dedupe[T resource.Entity](items []T) []T {
	out := make([]T, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		k := item.Key()
		if k != "" {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
		}
		out = append(out, item)
	}
	return out
}
