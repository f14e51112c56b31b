package listeditor

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/inventory-pro/dashboard/internal/resource"
)

// RevisionField is the hidden input carrying the revision an edit started from.
const RevisionField = "rev"

// Form reads trimmed, typed values out of a submitted form. Unparsable
// numbers read as zero and are left for validation to reject.
type Form url.Values

func (f Form) String(key string) string {
	return strings.TrimSpace(url.Values(f).Get(key))
}

func (f Form) Int(key string) int {
	n, err := strconv.Atoi(f.String(key))
	if err != nil {
		return 0
	}
	return n
}

func (f Form) Decimal(key string) decimal.Decimal {
	raw := strings.ReplaceAll(f.String(key), ",", "")
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (f Form) Float(key string) float64 {
	v, _ := f.Decimal(key).Float64()
	return v
}

// Bool treats a checked checkbox and the usual truthy words as true.
func (f Form) Bool(key string) bool {
	switch strings.ToLower(f.String(key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// Revision reads the hidden revision field.
func (f Form) Revision() resource.Rev {
	n, err := strconv.ParseInt(f.String(RevisionField), 10, 64)
	if err != nil {
		return resource.Rev{}
	}
	return resource.At(n)
}
