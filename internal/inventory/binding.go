package inventory

import (
	"context"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/inventory-pro/dashboard/internal/listeditor"
	"github.com/inventory-pro/dashboard/internal/masterdata/customers"
	"github.com/inventory-pro/dashboard/internal/masterdata/products"
	"github.com/inventory-pro/dashboard/internal/masterdata/vendors"
	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/resource"
)

// Binding plugs inventory transactions into the list-editor page.
type Binding struct{}

func (Binding) Resource() listeditor.Descriptor {
	return listeditor.Descriptor{
		Name:     "transactions",
		Title:    "Inventory Transactions",
		Singular: "Transaction",
		Path:     "/transactions",
		Template: "pages/transactions.html",
	}
}

func (Binding) Gateway(api apiclient.Requester) resource.Gateway[Transaction] {
	return NewGateway(api)
}

func (Binding) SearchText(t Transaction) []string {
	return []string{t.ProductLabel(), string(t.Kind()), t.Vendor.Label(), t.Customer.Label(), t.Reference}
}

func (Binding) DraftOf(t Transaction) Draft {
	d := Draft{
		Rev:       t.Rev,
		ID:        t.ID,
		Product:   t.Product.ID,
		Vendor:    t.Vendor.ID,
		Customer:  t.Customer.ID,
		Quantity:  t.Quantity,
		UnitPrice: t.UnitPrice,
		Reference: t.Reference,
		Note:      t.Note,
	}
	return d.WithType(t.Type)
}

func (Binding) Decode(id string, values url.Values) Draft {
	form := listeditor.Form(values)
	d := Draft{
		Rev:       form.Revision(),
		ID:        id,
		Product:   form.String("product"),
		Vendor:    form.String("vendor"),
		Customer:  form.String("customer"),
		Quantity:  form.Int("quantity"),
		UnitPrice: form.Float("unitPrice"),
		Reference: form.String("reference"),
		Note:      form.String("note"),
	}
	return d.WithType(form.String("type"))
}

// LoadOptions fetches the three dropdown lists concurrently.
func (Binding) LoadOptions(ctx context.Context, api apiclient.Requester) (map[string]any, error) {
	var (
		vendorList   []vendors.Vendor
		customerList []customers.Customer
		productList  []products.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		vendorList, err = vendors.NewGateway(api).List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		customerList, err = customers.NewGateway(api).List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		productList, err = products.NewGateway(api).List(gctx)
		return err
	})
	err := g.Wait()
	return map[string]any{
		"Types":     TransactionTypes,
		"Vendors":   vendorList,
		"Customers": customerList,
		"Products":  productList,
	}, err
}
