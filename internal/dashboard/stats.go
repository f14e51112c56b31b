// Package dashboard renders the landing page statistics.
package dashboard

import (
	"html/template"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inventory-pro/dashboard/internal/inventory"
	"github.com/inventory-pro/dashboard/internal/invoices"
	"github.com/inventory-pro/dashboard/internal/masterdata/products"
	"github.com/inventory-pro/dashboard/internal/reports"
	"github.com/inventory-pro/dashboard/internal/reports/chart"
)

const (
	recentLimit = 5
	trendMonths = 6
)

// Stats are the figures on the dashboard.
type Stats struct {
	TotalProducts  int
	ActiveVendors  int
	TotalCustomers int
	LowStockCount  int
	Revenue        decimal.Decimal
	MonthRevenue   decimal.Decimal
	Recent         []inventory.Transaction
	LowStock       []products.Product
	Trend          chart.Data
	LoadedAt       time.Time
}

// Compute derives Stats from ds. Revenue counts paid invoices only.
func Compute(ds reports.Dataset, lowStockThreshold int, now time.Time) Stats {
	s := Stats{
		TotalProducts:  len(ds.Products),
		TotalCustomers: len(ds.Customers),
		LoadedAt:       ds.LoadedAt,
	}
	for _, v := range ds.Vendors {
		if v.IsActive {
			s.ActiveVendors++
		}
	}
	for _, p := range ds.Products {
		if p.LowStock(lowStockThreshold) {
			s.LowStockCount++
			s.LowStock = append(s.LowStock, p)
		}
	}
	sort.SliceStable(s.LowStock, func(i, j int) bool { return s.LowStock[i].Quantity < s.LowStock[j].Quantity })
	if len(s.LowStock) > recentLimit {
		s.LowStock = s.LowStock[:recentLimit]
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	trend := make([]decimal.Decimal, trendMonths)
	for _, inv := range ds.Invoices {
		if inv.StatusOrDefault() != invoices.StatusPaid {
			continue
		}
		amount := inv.Amount()
		s.Revenue = s.Revenue.Add(amount)
		if inv.CreatedAt == nil {
			continue
		}
		created := inv.CreatedAt.In(now.Location())
		back := (first.Year()-created.Year())*12 + int(first.Month()-created.Month())
		if back == 0 {
			s.MonthRevenue = s.MonthRevenue.Add(amount)
		}
		if back >= 0 && back < trendMonths {
			i := trendMonths - 1 - back
			trend[i] = trend[i].Add(amount)
		}
	}
	s.Trend = chart.Data{Series: []chart.Series{{Name: "Revenue"}}}
	for i := 0; i < trendMonths; i++ {
		s.Trend.Labels = append(s.Trend.Labels, first.AddDate(0, i-trendMonths+1, 0).Format("Jan"))
		f, _ := trend[i].Float64()
		s.Trend.Series[0].Values = append(s.Trend.Series[0].Values, f)
	}

	s.Recent = append([]inventory.Transaction(nil), ds.Transactions...)
	sort.SliceStable(s.Recent, func(i, j int) bool {
		a, b := s.Recent[i].CreatedAt, s.Recent[j].CreatedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.After(*b)
	})
	if len(s.Recent) > recentLimit {
		s.Recent = s.Recent[:recentLimit]
	}
	return s
}

// TrendSVG renders the revenue trend.
func (s Stats) TrendSVG() template.HTML {
	if len(s.Trend.Labels) == 0 {
		return ""
	}
	out, err := chart.Line(s.Trend, chart.Opts{Title: "Revenue trend", Description: "Paid invoices per month", Height: 200})
	if err != nil {
		return ""
	}
	return out
}
