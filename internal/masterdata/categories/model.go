package categories

import (
	"github.com/inventory-pro/dashboard/internal/resource"
)

// Category groups products.
type Category struct {
	resource.Rev
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Key implements resource.Entity.
func (c Category) Key() string { return c.ID }

// Draft is the category form.
type Draft struct {
	Rev         resource.Rev `form:"-"`
	ID          string       `form:"-"`
	Name        string       `form:"name" validate:"required" label:"Category name"`
	Description string       `form:"description"`
}

type payload struct {
	resource.Rev
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DraftKey implements listeditor.Draft.
func (d Draft) DraftKey() string { return d.ID }

// Payload implements listeditor.Draft.
func (d Draft) Payload() any {
	return payload{Rev: d.Rev, Name: d.Name, Description: d.Description}
}
