package view

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ttacon/libphonenumber"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Funcs returns the helpers available to every template.
func Funcs(opts Options) template.FuncMap {
	region := strings.ToUpper(strings.TrimSpace(opts.PhoneRegion))
	if region == "" {
		region = "US"
	}
	return template.FuncMap{
		"formatDate": FormatDate,
		"money":      Money,
		"number":     Number,
		"phone": func(raw string) string {
			return Phone(raw, region)
		},
		"lower":     strings.ToLower,
		"hasPrefix": strings.HasPrefix,
		"dict":      dict,
		"seq": func(items ...string) []string {
			return items
		},
	}
}

// FormatDate accepts a time.Time or an RFC 3339 / ISO date string.
func FormatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006")
	case *time.Time:
		if t == nil {
			return ""
		}
		return FormatDate(*t)
	case string:
		if t == "" {
			return ""
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.Format("02 Jan 2006")
			}
		}
		return t
	default:
		return ""
	}
}

// Money renders an amount with two decimals and thousands separators.
func Money(v any) string {
	var d decimal.Decimal
	switch n := v.(type) {
	case decimal.Decimal:
		d = n
	case float64:
		d = decimal.NewFromFloat(n)
	case int:
		d = decimal.NewFromInt(int64(n))
	case int64:
		d = decimal.NewFromInt(n)
	default:
		return fmt.Sprint(v)
	}
	f, _ := d.Round(2).Float64()
	if f < 0 {
		return printer.Sprintf("-$%.2f", -f)
	}
	return printer.Sprintf("$%.2f", f)
}

// Number renders an integer with thousands separators.
func Number(v any) string {
	switch n := v.(type) {
	case int:
		return printer.Sprintf("%d", n)
	case int64:
		return printer.Sprintf("%d", n)
	case float64:
		return printer.Sprintf("%.0f", n)
	default:
		return fmt.Sprint(v)
	}
}

// Phone formats raw in international form when it parses for region, and
// returns it unchanged otherwise.
func Phone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	num, err := libphonenumber.Parse(raw, region)
	if err != nil || !libphonenumber.IsValidNumber(num) {
		return raw
	}
	return libphonenumber.Format(num, libphonenumber.INTERNATIONAL)
}

func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}
