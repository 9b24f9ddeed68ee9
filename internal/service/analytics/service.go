// Package analytics folds raw invoice and expense records inside a time
// window into daily totals, per-staff sell records and best/worst day
// summaries. The folds are pure functions of the stored data: identical
// calls against an unchanged store return identical results.
package analytics

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/foodrepublic/pos-backend/internal/domain/models"
)

const dateLayout = "2006-01-02"

// Store is the slice of the record store the aggregator needs: range scans
// ordered by creation time ascending.
type Store interface {
	ListInvoicesInRange(ctx context.Context, start, end time.Time) ([]models.Invoice, error)
	ListExpensesInRange(ctx context.Context, start, end time.Time) ([]models.Expense, error)
}

// Service is the analytics aggregator.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a new aggregator instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// DayWindow returns the half-open UTC window covering one calendar day.
func DayWindow(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// MonthWindow returns the half-open UTC window covering one calendar month.
func MonthWindow(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// InvoicesForDay returns the invoices of one UTC calendar day, creation
// time ascending. An empty day is an empty slice, not an error.
func (s *Service) InvoicesForDay(ctx context.Context, day time.Time) ([]models.Invoice, error) {
	start, end := DayWindow(day)
	return s.store.ListInvoicesInRange(ctx, start, end)
}

// MonthlySummary scans one month of invoices and folds them into daily
// totals, per-staff daily sums and the best/worst selling day. A month with
// no invoices reports NoData with empty folds and no extremum; it is never
// an error.
func (s *Service) MonthlySummary(ctx context.Context, year int, month time.Month) (*models.MonthlySummary, error) {
	start, end := MonthWindow(year, month)

	invoices, err := s.store.ListInvoicesInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	summary := &models.MonthlySummary{
		Invoices:     invoices,
		DailyTotals:  foldDailyTotals(invoices),
		StaffRecords: foldStaffRecords(invoices),
	}

	if len(summary.DailyTotals) == 0 {
		summary.NoData = true
		summary.Invoices = []models.Invoice{}
		return summary, nil
	}

	summary.MinMax = sellExtremum(summary.DailyTotals)

	s.logger.Debug("monthly summary computed",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Int("invoices", len(invoices)),
		zap.Int("days", len(summary.DailyTotals)))
	return summary, nil
}

// ExpensesForDay returns the expenses of one UTC calendar day, creation
// time ascending.
func (s *Service) ExpensesForDay(ctx context.Context, day time.Time) ([]models.Expense, error) {
	start, end := DayWindow(day)
	return s.store.ListExpensesInRange(ctx, start, end)
}

// ExpenseRange groups the expenses of [start of startDay, end of endDay]
// per calendar day with per-day totals, dates ascending.
func (s *Service) ExpenseRange(ctx context.Context, startDay, endDay time.Time) ([]models.ExpenseDayGroup, error) {
	start, _ := DayWindow(startDay)
	_, end := DayWindow(endDay)

	expenses, err := s.store.ListExpensesInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return foldExpenseDays(expenses), nil
}

// foldDailyTotals accumulates invoices into one DailyTotal per distinct UTC
// calendar day. Input order (creation time ascending) fixes the output
// order, so dates come out ascending.
func foldDailyTotals(invoices []models.Invoice) []models.DailyTotal {
	byDate := make(map[string]int)
	totals := make([]models.DailyTotal, 0, len(invoices))

	for _, invoice := range invoices {
		date := invoice.CreatedAt.UTC().Format(dateLayout)
		idx, ok := byDate[date]
		if !ok {
			idx = len(totals)
			byDate[date] = idx
			totals = append(totals, models.DailyTotal{Date: date})
		}
		totals[idx].DailySell += invoice.TotalBill
		totals[idx].DailyDiscount += invoice.TotalDiscount
	}
	return totals
}

// foldStaffRecords accumulates invoices into per-staff daily billed sums.
// Staff appear in first-served order, their days in ascending order.
func foldStaffRecords(invoices []models.Invoice) []models.StaffSellRecord {
	byStaff := make(map[string]int)
	records := make([]models.StaffSellRecord, 0)

	for _, invoice := range invoices {
		date := invoice.CreatedAt.UTC().Format(dateLayout)

		ri, ok := byStaff[invoice.ServedBy]
		if !ok {
			ri = len(records)
			byStaff[invoice.ServedBy] = ri
			records = append(records, models.StaffSellRecord{Staff: invoice.ServedBy})
		}

		sells := records[ri].SellRecord
		found := false
		for di := range sells {
			if sells[di].Date == date {
				sells[di].Sum += invoice.TotalBill
				found = true
				break
			}
		}
		if !found {
			records[ri].SellRecord = append(sells, models.DailySell{Date: date, Sum: invoice.TotalBill})
		}
	}
	return records
}

// sellExtremum picks the best and worst selling days. On ties the earliest
// date wins; totals arrive date-ascending, so the first hit is kept.
// Callers must not pass an empty slice.
func sellExtremum(totals []models.DailyTotal) *models.SellExtremum {
	ext := &models.SellExtremum{
		MaxSellDate: totals[0].Date,
		MaxSell:     totals[0].DailySell,
		MinSellDate: totals[0].Date,
		MinSell:     totals[0].DailySell,
	}
	for _, t := range totals[1:] {
		if t.DailySell > ext.MaxSell {
			ext.MaxSell = t.DailySell
			ext.MaxSellDate = t.Date
		}
		if t.DailySell < ext.MinSell {
			ext.MinSell = t.DailySell
			ext.MinSellDate = t.Date
		}
	}
	return ext
}

// foldExpenseDays groups expenses by UTC calendar day with running totals.
func foldExpenseDays(expenses []models.Expense) []models.ExpenseDayGroup {
	byDate := make(map[string]int)
	groups := make([]models.ExpenseDayGroup, 0)

	for _, expense := range expenses {
		date := expense.CreatedAt.UTC().Format(dateLayout)
		idx, ok := byDate[date]
		if !ok {
			idx = len(groups)
			byDate[date] = idx
			groups = append(groups, models.ExpenseDayGroup{Date: date})
		}
		groups[idx].Expenses = append(groups[idx].Expenses, expense)
		groups[idx].TotalExpenses += expense.ExpenseAmount
	}
	return groups
}
