package invoices

import (
	"context"
	"net/url"

	"github.com/inventory-pro/dashboard/internal/listeditor"
	"github.com/inventory-pro/dashboard/internal/masterdata/customers"
	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/resource"
)

// Binding plugs invoices into the list-editor page.
type Binding struct{}

func (Binding) Resource() listeditor.Descriptor {
	return listeditor.Descriptor{
		Name:     "invoices",
		Title:    "Invoices & Payments",
		Singular: "Invoice",
		Path:     "/invoices",
		Template: "pages/invoices.html",
	}
}

func (Binding) Gateway(api apiclient.Requester) resource.Gateway[Invoice] {
	return NewGateway(api)
}

func (Binding) SearchText(i Invoice) []string {
	return []string{i.DisplayNumber(), i.CustomerLabel(), string(i.Status)}
}

func (Binding) DraftOf(i Invoice) Draft {
	amount, _ := i.Amount().Float64()
	return Draft{
		Rev:         i.Rev,
		ID:          i.ID,
		Number:      i.DisplayNumber(),
		Customer:    i.Customer.ID,
		Amount:      amount,
		DueDate:     i.DueDateInput(),
		Status:      string(i.StatusOrDefault()),
		Description: i.Description,
	}
}

func (Binding) Decode(id string, values url.Values) Draft {
	form := listeditor.Form(values)
	status := form.String("status")
	if status == "" {
		status = string(StatusIssued)
	}
	return Draft{
		Rev:         form.Revision(),
		ID:          id,
		Number:      form.String("number"),
		Customer:    form.String("customer"),
		Amount:      form.Float("amount"),
		DueDate:     form.String("dueDate"),
		Status:      status,
		Description: form.String("description"),
	}
}

// LoadOptions fills the customer dropdown.
func (Binding) LoadOptions(ctx context.Context, api apiclient.Requester) (map[string]any, error) {
	list, err := customers.NewGateway(api).List(ctx)
	return map[string]any{"Customers": list, "Statuses": Statuses}, err
}
