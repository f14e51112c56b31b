package products

import (
	"context"
	"net/url"

	"github.com/inventory-pro/dashboard/internal/listeditor"
	"github.com/inventory-pro/dashboard/internal/masterdata/categories"
	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/resource"
)

// Binding plugs products into the list-editor page.
type Binding struct{}

func (Binding) Resource() listeditor.Descriptor {
	return listeditor.Descriptor{
		Name:     "products",
		Title:    "Products",
		Singular: "Product",
		Path:     "/products",
		Template: "pages/products.html",
	}
}

func (Binding) Gateway(api apiclient.Requester) resource.Gateway[Product] {
	return NewGateway(api)
}

func (Binding) SearchText(p Product) []string {
	return []string{p.Name, p.SKU, p.Category.Label()}
}

func (Binding) DraftOf(p Product) Draft {
	return Draft{
		Rev:         p.Rev,
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Category:    p.Category.ID,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Description: p.Description,
		IsActive:    p.IsActive,
	}
}

func (Binding) Decode(id string, values url.Values) Draft {
	form := listeditor.Form(values)
	return Draft{
		Rev:         form.Revision(),
		ID:          id,
		Name:        form.String("name"),
		SKU:         form.String("sku"),
		Category:    form.String("category"),
		Price:       form.Float("price"),
		Quantity:    form.Int("quantity"),
		Description: form.String("description"),
		IsActive:    form.Bool("isActive"),
	}
}

// LoadOptions fills the category dropdown.
func (Binding) LoadOptions(ctx context.Context, api apiclient.Requester) (map[string]any, error) {
	cats, err := categories.NewGateway(api).List(ctx)
	if err != nil {
		return map[string]any{"Categories": []categories.Category{}}, err
	}
	return map[string]any{"Categories": cats}, nil
}
