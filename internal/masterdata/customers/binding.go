package customers

import (
	"net/url"

	"github.com/inventory-pro/dashboard/internal/listeditor"
	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/resource"
)

// Binding plugs customers into the list-editor page.
type Binding struct{}

func (Binding) Resource() listeditor.Descriptor {
	return listeditor.Descriptor{
		Name:     "customers",
		Title:    "Customers",
		Singular: "Customer",
		Path:     "/customers",
		Template: "pages/customers.html",
	}
}

func (Binding) Gateway(api apiclient.Requester) resource.Gateway[Customer] {
	return NewGateway(api)
}

func (Binding) SearchText(c Customer) []string {
	return []string{c.Name, c.Email, c.Phone, c.Address}
}

func (Binding) DraftOf(c Customer) Draft {
	customerType := c.CustomerType
	if customerType == "" {
		customerType = Types[0]
	}
	return Draft{
		Rev:          c.Rev,
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		City:         c.City,
		State:        c.State,
		ZipCode:      c.ZipCode,
		CustomerType: customerType,
		Status:       c.Status(),
	}
}

func (Binding) Decode(id string, values url.Values) Draft {
	form := listeditor.Form(values)
	status := form.String("status")
	if status == "" {
		status = StatusActive
	}
	return Draft{
		Rev:          form.Revision(),
		ID:           id,
		Name:         form.String("name"),
		Email:        form.String("email"),
		Phone:        form.String("phone"),
		Address:      form.String("address"),
		City:         form.String("city"),
		State:        form.String("state"),
		ZipCode:      form.String("zipCode"),
		CustomerType: form.String("customerType"),
		Status:       status,
	}
}
