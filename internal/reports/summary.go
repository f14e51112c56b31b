package reports

import (
	"errors"
	"html/template"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inventory-pro/dashboard/internal/inventory"
	"github.com/inventory-pro/dashboard/internal/invoices"
	"github.com/inventory-pro/dashboard/internal/reports/chart"
	"github.com/inventory-pro/dashboard/internal/view"
)

// Kind names one report.
type Kind string

const (
	KindSales     Kind = "sales"
	KindInventory Kind = "inventory"
	KindCustomers Kind = "customers"
	KindVendors   Kind = "vendors"
)

// ErrUnknownKind is returned for report names outside Kinds.
var ErrUnknownKind = errors.New("reports: unknown report")

// Catalog describes the reports offered, in display order.
var Catalog = []Entry{
	{Kind: KindSales, Title: "Sales Report", Description: "Invoiced and collected amounts by month"},
	{Kind: KindInventory, Title: "Inventory Report", Description: "Stock levels and movement analysis"},
	{Kind: KindCustomers, Title: "Customer Report", Description: "Customer base and top buyers"},
	{Kind: KindVendors, Title: "Vendor Report", Description: "Purchases by vendor"},
}

// Entry is one line of the report picker.
type Entry struct {
	Kind        Kind
	Title       string
	Description string
}

// ParseKind accepts a report name; blank selects sales.
func ParseKind(raw string) (Kind, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return KindSales, nil
	}
	for _, e := range Catalog {
		if string(e.Kind) == raw {
			return e.Kind, nil
		}
	}
	return "", ErrUnknownKind
}

// Stat is one headline figure.
type Stat struct {
	Label string
	Value decimal.Decimal
	Money bool
}

// Display formats the figure for pages and exports.
func (s Stat) Display() string {
	if s.Money {
		return view.Money(s.Value)
	}
	return view.Number(s.Value.IntPart())
}

// Table is the detail section of a report.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Report is a computed summary ready to render or export.
type Report struct {
	Kind        Kind
	Title       string
	Description string
	Stats       []Stat
	Table       Table
	Chart       chart.Data
	ChartKind   string
	GeneratedAt time.Time
}

// SVG renders the report chart, or nothing when there is no data.
func (r Report) SVG() template.HTML {
	if len(r.Chart.Labels) == 0 {
		return ""
	}
	opts := chart.Opts{Title: r.Title, Description: r.Description}
	var (
		out template.HTML
		err error
	)
	if r.ChartKind == "line" {
		out, err = chart.Line(r.Chart, opts)
	} else {
		out, err = chart.Bars(r.Chart, opts)
	}
	if err != nil {
		return ""
	}
	return out
}

// Options tune report computation.
type Options struct {
	LowStockThreshold int
	Now               time.Time
	Months            int
}

func (o Options) normalized() Options {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.Months <= 0 {
		o.Months = 6
	}
	return o
}

// Build computes the report named kind from ds.
func Build(kind Kind, ds Dataset, opts Options) (Report, error) {
	opts = opts.normalized()
	var r Report
	switch kind {
	case KindSales:
		r = sales(ds, opts)
	case KindInventory:
		r = stock(ds, opts)
	case KindCustomers:
		r = buyers(ds, opts)
	case KindVendors:
		r = suppliers(ds, opts)
	default:
		return Report{}, ErrUnknownKind
	}
	for _, e := range Catalog {
		if e.Kind == kind {
			r.Kind, r.Title, r.Description = e.Kind, e.Title, e.Description
		}
	}
	r.GeneratedAt = opts.Now
	return r, nil
}

func sales(ds Dataset, opts Options) Report {
	months := monthLabels(opts.Now, opts.Months)
	invoiced := make([]decimal.Decimal, len(months))
	collected := make([]decimal.Decimal, len(months))
	counts := make([]int, len(months))

	var total, outstanding decimal.Decimal
	for _, inv := range ds.Invoices {
		amount := inv.Amount()
		balance := decimal.NewFromFloat(inv.Balance).Round(2)
		total = total.Add(amount)
		outstanding = outstanding.Add(balance)
		if i := monthIndex(months, invoiceDate(inv)); i >= 0 {
			invoiced[i] = invoiced[i].Add(amount)
			collected[i] = collected[i].Add(amount.Sub(balance))
			counts[i]++
		}
	}

	rows := make([][]string, 0, len(months))
	for i, m := range months {
		rows = append(rows, []string{m.label, strconv.Itoa(counts[i]), view.Money(invoiced[i]), view.Money(collected[i])})
	}
	return Report{
		Stats: []Stat{
			{Label: "Total Invoiced", Value: total, Money: true},
			{Label: "Collected", Value: total.Sub(outstanding), Money: true},
			{Label: "Invoices", Value: decimal.NewFromInt(int64(len(ds.Invoices)))},
			{Label: "Average Invoice", Value: average(total, len(ds.Invoices)), Money: true},
			{Label: "Outstanding", Value: outstanding, Money: true},
		},
		Table: Table{Columns: []string{"Month", "Invoices", "Invoiced", "Collected"}, Rows: rows},
		Chart: chart.Data{
			Labels: labelsOf(months),
			Series: []chart.Series{
				{Name: "Invoiced", Values: floats(invoiced)},
				{Name: "Collected", Values: floats(collected)},
			},
		},
	}
}

func stock(ds Dataset, opts Options) Report {
	var value decimal.Decimal
	low, out := 0, 0
	var rows [][]string
	for _, p := range ds.Products {
		value = value.Add(inventory.LineTotal(p.Quantity, p.Price))
		switch {
		case p.Quantity <= 0:
			out++
		case p.LowStock(opts.LowStockThreshold):
			low++
		}
		if p.LowStock(opts.LowStockThreshold) {
			rows = append(rows, []string{p.Name, p.SKU, view.Number(p.Quantity), view.Money(p.Price)})
		}
	}

	months := monthLabels(opts.Now, opts.Months)
	in := make([]decimal.Decimal, len(months))
	outQty := make([]decimal.Decimal, len(months))
	for _, t := range ds.Transactions {
		i := monthIndex(months, t.CreatedAt)
		if i < 0 {
			continue
		}
		qty := decimal.NewFromInt(int64(t.Quantity)).Abs()
		switch t.Kind() {
		case inventory.TransactionTypeStockIn:
			in[i] = in[i].Add(qty)
		case inventory.TransactionTypeStockOut:
			outQty[i] = outQty[i].Add(qty)
		}
	}
	return Report{
		Stats: []Stat{
			{Label: "Total Products", Value: decimal.NewFromInt(int64(len(ds.Products)))},
			{Label: "Low Stock Items", Value: decimal.NewFromInt(int64(low))},
			{Label: "Out of Stock", Value: decimal.NewFromInt(int64(out))},
			{Label: "Stock Value", Value: value, Money: true},
		},
		Table: Table{Columns: []string{"Product", "SKU", "Quantity", "Price"}, Rows: rows},
		Chart: chart.Data{
			Labels: labelsOf(months),
			Series: []chart.Series{
				{Name: "Units in", Values: floats(in)},
				{Name: "Units out", Values: floats(outQty)},
			},
		},
	}
}

type tally struct {
	name    string
	count   int
	units   int
	amount  decimal.Decimal
	balance decimal.Decimal
}

func buyers(ds Dataset, opts Options) Report {
	active, fresh := 0, 0
	year, month, _ := opts.Now.Date()
	names := make(map[string]string, len(ds.Customers))
	for _, c := range ds.Customers {
		names[c.ID] = c.Name
		if c.IsActive {
			active++
		}
		if c.CreatedAt != nil {
			y, m, _ := c.CreatedAt.In(opts.Now.Location()).Date()
			if y == year && m == month {
				fresh++
			}
		}
	}

	byCustomer := map[string]*tally{}
	var total decimal.Decimal
	for _, inv := range ds.Invoices {
		id := inv.Customer.ID
		t, ok := byCustomer[id]
		if !ok {
			name := names[id]
			if name == "" {
				name = inv.CustomerLabel()
			}
			t = &tally{name: name}
			byCustomer[id] = t
		}
		t.count++
		t.amount = t.amount.Add(inv.Amount())
		t.balance = t.balance.Add(decimal.NewFromFloat(inv.Balance).Round(2))
		total = total.Add(inv.Amount())
	}
	ranked := rank(byCustomer)

	rows := make([][]string, 0, len(ranked))
	for _, t := range ranked {
		rows = append(rows, []string{t.name, strconv.Itoa(t.count), view.Money(t.amount), view.Money(t.balance)})
	}
	return Report{
		Stats: []Stat{
			{Label: "Total Customers", Value: decimal.NewFromInt(int64(len(ds.Customers)))},
			{Label: "Active Customers", Value: decimal.NewFromInt(int64(active))},
			{Label: "New This Month", Value: decimal.NewFromInt(int64(fresh))},
			{Label: "Value per Customer", Value: average(total, len(byCustomer)), Money: true},
		},
		Table: Table{Columns: []string{"Customer", "Invoices", "Invoiced", "Outstanding"}, Rows: rows},
		Chart: topChart(ranked, "Invoiced"),
	}
}

func suppliers(ds Dataset, _ Options) Report {
	active := 0
	names := make(map[string]string, len(ds.Vendors))
	for _, v := range ds.Vendors {
		names[v.ID] = v.Name
		if v.IsActive {
			active++
		}
	}

	byVendor := map[string]*tally{}
	var spent decimal.Decimal
	purchases := 0
	for _, t := range ds.Transactions {
		if t.Kind() != inventory.TransactionTypeStockIn {
			continue
		}
		id := t.Vendor.ID
		v, ok := byVendor[id]
		if !ok {
			name := names[id]
			if name == "" {
				name = t.Vendor.Label()
			}
			if name == "" {
				name = "Unassigned"
			}
			v = &tally{name: name}
			byVendor[id] = v
		}
		v.count++
		v.units += t.Quantity
		v.amount = v.amount.Add(t.Total())
		spent = spent.Add(t.Total())
		purchases++
	}
	ranked := rank(byVendor)

	rows := make([][]string, 0, len(ranked))
	for _, v := range ranked {
		rows = append(rows, []string{v.name, strconv.Itoa(v.count), view.Number(v.units), view.Money(v.amount)})
	}
	return Report{
		Stats: []Stat{
			{Label: "Active Vendors", Value: decimal.NewFromInt(int64(active))},
			{Label: "Total Spent", Value: spent, Money: true},
			{Label: "Purchases", Value: decimal.NewFromInt(int64(purchases))},
			{Label: "Average Purchase", Value: average(spent, purchases), Money: true},
		},
		Table: Table{Columns: []string{"Vendor", "Purchases", "Units", "Spent"}, Rows: rows},
		Chart: topChart(ranked, "Spent"),
	}
}

// rank orders tallies by amount, largest first, then by name.
func rank(m map[string]*tally) []*tally {
	out := make([]*tally, 0, len(m))
	for _, t := range m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].amount.Cmp(out[j].amount); c != 0 {
			return c > 0
		}
		return out[i].name < out[j].name
	})
	return out
}

func topChart(ranked []*tally, series string) chart.Data {
	if len(ranked) == 0 {
		return chart.Data{}
	}
	n := min(len(ranked), 5)
	data := chart.Data{Series: []chart.Series{{Name: series}}}
	for _, t := range ranked[:n] {
		data.Labels = append(data.Labels, t.name)
		f, _ := t.amount.Float64()
		data.Series[0].Values = append(data.Series[0].Values, f)
	}
	return data
}

func average(total decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(n))).Round(2)
}

func floats(ds []decimal.Decimal) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i], _ = d.Float64()
	}
	return out
}

type month struct {
	year  int
	month time.Month
	label string
	loc   *time.Location
}

// monthLabels returns the n calendar months ending with now's, oldest first.
func monthLabels(now time.Time, n int) []month {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	out := make([]month, n)
	for i := 0; i < n; i++ {
		m := first.AddDate(0, i-n+1, 0)
		out[i] = month{year: m.Year(), month: m.Month(), label: m.Format("Jan 2006"), loc: now.Location()}
	}
	return out
}

func labelsOf(months []month) []string {
	out := make([]string, len(months))
	for i, m := range months {
		out[i] = m.label
	}
	return out
}

func monthIndex(months []month, at *time.Time) int {
	if at == nil || len(months) == 0 {
		return -1
	}
	y, m, _ := at.In(months[0].loc).Date()
	for i, candidate := range months {
		if candidate.year == y && candidate.month == m {
			return i
		}
	}
	return -1
}

// invoiceDate prefers the creation time and falls back to the due date.
func invoiceDate(inv invoices.Invoice) *time.Time {
	if inv.CreatedAt != nil {
		return inv.CreatedAt
	}
	if due := inv.DueDateInput(); due != "" {
		if t, err := time.Parse("2006-01-02", due); err == nil {
			return &t
		}
	}
	return nil
}
