package customers

import (
	"time"

	"github.com/inventory-pro/dashboard/internal/resource"
)

// Customer buys stock.
type Customer struct {
	resource.Rev
	ID           string     `json:"_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Address      string     `json:"address,omitempty"`
	City         string     `json:"city,omitempty"`
	State        string     `json:"state,omitempty"`
	ZipCode      string     `json:"zipCode,omitempty"`
	CustomerType string     `json:"customerType,omitempty"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

// Key implements resource.Entity.
func (c Customer) Key() string { return c.ID }

// Status is the label shown in the table.
func (c Customer) Status() string {
	if c.IsActive {
		return StatusActive
	}
	return StatusInactive
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusBlocked  = "blocked"
)

// Types are the accepted customer types.
var Types = []string{"individual", "business", "wholesale"}

// Draft is the customer form.
type Draft struct {
	Rev          resource.Rev `form:"-"`
	ID           string       `form:"-"`
	Name         string       `form:"name" validate:"required" label:"Name"`
	Email        string       `form:"email" validate:"omitempty,email" label:"Email"`
	Phone        string       `form:"phone"`
	Address      string       `form:"address"`
	City         string       `form:"city"`
	State        string       `form:"state"`
	ZipCode      string       `form:"zipCode"`
	CustomerType string       `form:"customerType" validate:"required,oneof=individual business wholesale" label:"Customer type"`
	Status       string       `form:"status" validate:"omitempty,oneof=active inactive blocked" label:"Status"`
}

type payload struct {
	resource.Rev
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	CustomerType string `json:"customerType"`
	IsActive     bool   `json:"isActive"`
}

// DraftKey implements listeditor.Draft.
func (d Draft) DraftKey() string { return d.ID }

// Payload implements listeditor.Draft.
func (d Draft) Payload() any {
	return payload{
		Rev:          d.Rev,
		Name:         d.Name,
		Email:        d.Email,
		Phone:        d.Phone,
		Address:      d.Address,
		City:         d.City,
		State:        d.State,
		ZipCode:      d.ZipCode,
		CustomerType: d.CustomerType,
		IsActive:     d.Status != StatusInactive && d.Status != StatusBlocked,
	}
}
