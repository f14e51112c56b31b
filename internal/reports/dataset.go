// Package reports summarises backend lists into dashboard statistics and
// downloadable reports.
package reports

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/inventory-pro/dashboard/internal/inventory"
	"github.com/inventory-pro/dashboard/internal/invoices"
	"github.com/inventory-pro/dashboard/internal/masterdata/customers"
	"github.com/inventory-pro/dashboard/internal/masterdata/products"
	"github.com/inventory-pro/dashboard/internal/masterdata/vendors"
	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/platform/cache"
)

// Dataset is every list the summaries are computed from.
type Dataset struct {
	Products     []products.Product      `json:"products"`
	Vendors      []vendors.Vendor        `json:"vendors"`
	Customers    []customers.Customer    `json:"customers"`
	Transactions []inventory.Transaction `json:"transactions"`
	Invoices     []invoices.Invoice      `json:"invoices"`
	LoadedAt     time.Time               `json:"loadedAt"`
}

// Load fetches all lists concurrently. The first failure cancels the rest.
func Load(ctx context.Context, api apiclient.Requester) (Dataset, error) {
	var ds Dataset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ds.Products, err = products.NewGateway(api).List(gctx)
		return wrap("products", err)
	})
	g.Go(func() (err error) {
		ds.Vendors, err = vendors.NewGateway(api).List(gctx)
		return wrap("vendors", err)
	})
	g.Go(func() (err error) {
		ds.Customers, err = customers.NewGateway(api).List(gctx)
		return wrap("customers", err)
	})
	g.Go(func() (err error) {
		ds.Transactions, err = inventory.NewGateway(api).List(gctx)
		return wrap("transactions", err)
	})
	g.Go(func() (err error) {
		ds.Invoices, err = invoices.NewGateway(api).List(gctx)
		return wrap("invoices", err)
	})
	if err := g.Wait(); err != nil {
		return Dataset{}, err
	}
	ds.LoadedAt = time.Now().UTC()
	return ds, nil
}

func wrap(list string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("reports: load %s: %w", list, err)
}

// Source serves datasets per session through a short-lived cache.
type Source struct {
	cache *cache.JSON
	load  func(context.Context, apiclient.Requester) (Dataset, error)
}

// NewSource wraps c. A nil c disables caching.
func NewSource(c *cache.JSON) *Source {
	return &Source{cache: c, load: Load}
}

// Dataset returns the cached dataset of session, loading it on a miss.
func (s *Source) Dataset(ctx context.Context, session string, api apiclient.Requester) (Dataset, error) {
	var ds Dataset
	err := s.cache.FetchJSON(ctx, s.cache.Key(session), &ds, func(ctx context.Context) (any, error) {
		return s.load(ctx, api)
	})
	return ds, err
}

// Invalidate drops the cached dataset of session.
func (s *Source) Invalidate(ctx context.Context, session string) error {
	return s.cache.Invalidate(ctx, s.cache.Key(session))
}
