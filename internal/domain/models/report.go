package models

import "time"

// DailyTotal is the per-calendar-day fold of invoices inside a queried
// window. Date uses the YYYY-MM-DD form of the invoice's UTC creation day.
type DailyTotal struct {
	Date          string  `json:"createdDate"`
	DailySell     float64 `json:"daily_sell"`
	DailyDiscount float64 `json:"daily_discount"`
}

// DailySell is one staff member's billed total for one calendar day.
type DailySell struct {
	Date string  `json:"createdAt"`
	Sum  float64 `json:"sum"`
}

// StaffSellRecord maps one staff member to their per-day billed totals,
// dates ascending.
type StaffSellRecord struct {
	Staff      string      `json:"staff"`
	SellRecord []DailySell `json:"sellRecord"`
}

// SellExtremum names the best or worst selling day of a window. When several
// days tie, the earliest date wins.
type SellExtremum struct {
	MaxSellDate string  `json:"maxSellDate"`
	MaxSell     float64 `json:"maxSell"`
	MinSellDate string  `json:"minSellDate"`
	MinSell     float64 `json:"minSell"`
}

// MonthlySummary is the full fold of one month of invoices. NoData is set
// when the window held no invoices; DailyTotals is then empty and MinMax nil.
type MonthlySummary struct {
	Invoices     []Invoice         `json:"invoices"`
	DailyTotals  []DailyTotal      `json:"dailySellSummary"`
	MinMax       *SellExtremum     `json:"minMaxSummary,omitempty"`
	StaffRecords []StaffSellRecord `json:"staffSellRecord"`
	NoData       bool              `json:"no_data"`
}

// ExpenseDayGroup is one calendar day of expenses with its running total.
type ExpenseDayGroup struct {
	Date          string    `json:"date"`
	Expenses      []Expense `json:"expenses"`
	TotalExpenses float64   `json:"totalExpenses"`
}

// DailyReport is the persisted close-of-day snapshot produced by the
// reporting job.
type DailyReport struct {
	Date          time.Time `bson:"date" json:"date"`
	InvoiceCount  int       `bson:"invoice_count" json:"invoice_count"`
	GrossSales    float64   `bson:"gross_sales" json:"gross_sales"`
	DiscountGiven float64   `bson:"discount_given" json:"discount_given"`
	Expenses      float64   `bson:"expenses" json:"expenses"`
	NetSales      float64   `bson:"net_sales" json:"net_sales"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
