package categories

import (
	"net/url"

	"github.com/inventory-pro/dashboard/internal/listeditor"
	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/resource"
)

// Binding plugs categories into the list-editor page.
type Binding struct{}

func (Binding) Resource() listeditor.Descriptor {
	return listeditor.Descriptor{
		Name:     "categories",
		Title:    "Categories",
		Singular: "Category",
		Path:     "/categories",
		Template: "pages/categories.html",
	}
}

func (Binding) Gateway(api apiclient.Requester) resource.Gateway[Category] {
	return NewGateway(api)
}

func (Binding) SearchText(c Category) []string {
	return []string{c.Name, c.Description}
}

func (Binding) DraftOf(c Category) Draft {
	return Draft{Rev: c.Rev, ID: c.ID, Name: c.Name, Description: c.Description}
}

func (Binding) Decode(id string, values url.Values) Draft {
	form := listeditor.Form(values)
	return Draft{
		Rev:         form.Revision(),
		ID:          id,
		Name:        form.String("name"),
		Description: form.String("description"),
	}
}
