package products

import (
	"github.com/inventory-pro/dashboard/internal/resource"
)

// Product is a stocked item.
type Product struct {
	resource.Rev
	ID          string       `json:"_id"`
	Name        string       `json:"name"`
	SKU         string       `json:"sku"`
	Category    resource.Ref `json:"category"`
	Price       float64      `json:"price"`
	Quantity    int          `json:"quantity"`
	Description string       `json:"description,omitempty"`
	IsActive    bool         `json:"isActive"`
}

// Key implements resource.Entity.
func (p Product) Key() string { return p.ID }

// LowStock reports whether the quantity on hand is at or below threshold.
func (p Product) LowStock(threshold int) bool {
	return p.Quantity <= threshold
}

// Draft is the product form.
type Draft struct {
	Rev         resource.Rev `form:"-"`
	ID          string       `form:"-"`
	Name        string       `form:"name" validate:"required" label:"Product name"`
	SKU         string       `form:"sku" validate:"required" label:"SKU"`
	Category    string       `form:"category"`
	Price       float64      `form:"price" validate:"gte=0" label:"Price"`
	Quantity    int          `form:"quantity" validate:"gte=0" label:"Quantity"`
	Description string       `form:"description"`
	IsActive    bool         `form:"isActive"`
}

type payload struct {
	resource.Rev
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Category    *string `json:"category,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description"`
	IsActive    bool    `json:"isActive"`
}

// DraftKey implements listeditor.Draft.
func (d Draft) DraftKey() string { return d.ID }

// Payload implements listeditor.Draft.
func (d Draft) Payload() any {
	p := payload{
		Rev:         d.Rev,
		Name:        d.Name,
		SKU:         d.SKU,
		Price:       d.Price,
		Quantity:    d.Quantity,
		Description: d.Description,
		IsActive:    d.IsActive,
	}
	if d.Category != "" {
		category := d.Category
		p.Category = &category
	}
	return p
}
