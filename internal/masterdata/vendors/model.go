package vendors

import (
	"time"

	"github.com/inventory-pro/dashboard/internal/resource"
)

// Vendor supplies stock.
type Vendor struct {
	resource.Rev
	ID            string     `json:"_id"`
	Name          string     `json:"name"`
	ContactPerson string     `json:"contactPerson,omitempty"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Address       string     `json:"address,omitempty"`
	IsActive      bool       `json:"isActive"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}

// Key implements resource.Entity.
func (v Vendor) Key() string { return v.ID }

// Status is the label shown in the table.
func (v Vendor) Status() string {
	if v.IsActive {
		return StatusActive
	}
	return StatusInactive
}

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// Draft is the vendor form. The company field maps to the API name.
type Draft struct {
	Rev           resource.Rev `form:"-"`
	ID            string       `form:"-"`
	Company       string       `form:"company" validate:"required" label:"Company name"`
	ContactPerson string       `form:"contactPerson"`
	Email         string       `form:"email" validate:"omitempty,email" label:"Email"`
	Phone         string       `form:"phone"`
	Address       string       `form:"address"`
	Status        string       `form:"status" validate:"omitempty,oneof=active inactive suspended" label:"Status"`
}

type payload struct {
	resource.Rev
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	IsActive      bool   `json:"isActive"`
}

// DraftKey implements listeditor.Draft.
func (d Draft) DraftKey() string { return d.ID }

// Payload implements listeditor.Draft.
func (d Draft) Payload() any {
	return payload{
		Rev:           d.Rev,
		Name:          d.Company,
		ContactPerson: d.ContactPerson,
		Email:         d.Email,
		Phone:         d.Phone,
		Address:       d.Address,
		IsActive:      d.Status != StatusInactive && d.Status != StatusSuspended,
	}
}
