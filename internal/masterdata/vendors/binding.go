package vendors

import (
	"net/url"

	"github.com/inventory-pro/dashboard/internal/listeditor"
	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/resource"
)

// Binding plugs vendors into the list-editor page.
type Binding struct{}

func (Binding) Resource() listeditor.Descriptor {
	return listeditor.Descriptor{
		Name:     "vendors",
		Title:    "Vendors",
		Singular: "Vendor",
		Path:     "/vendors",
		Template: "pages/vendors.html",
	}
}

func (Binding) Gateway(api apiclient.Requester) resource.Gateway[Vendor] {
	return NewGateway(api)
}

func (Binding) SearchText(v Vendor) []string {
	return []string{v.Name, v.Email, v.Phone, v.Address}
}

func (Binding) DraftOf(v Vendor) Draft {
	return Draft{
		Rev:           v.Rev,
		ID:            v.ID,
		Company:       v.Name,
		ContactPerson: v.ContactPerson,
		Email:         v.Email,
		Phone:         v.Phone,
		Address:       v.Address,
		Status:        v.Status(),
	}
}

func (Binding) Decode(id string, values url.Values) Draft {
	form := listeditor.Form(values)
	status := form.String("status")
	if status == "" {
		status = StatusActive
	}
	return Draft{
		Rev:           form.Revision(),
		ID:            id,
		Company:       form.String("company"),
		ContactPerson: form.String("contactPerson"),
		Email:         form.String("email"),
		Phone:         form.String("phone"),
		Address:       form.String("address"),
		Status:        status,
	}
}
