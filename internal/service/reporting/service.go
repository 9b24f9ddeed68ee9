// Package reporting produces the close-of-day snapshot: one day of invoices
// and expenses folded into a DailyReport, persisted, exported to the
// accounting sheet and announced on the configured webhook.
package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/foodrepublic/pos-backend/internal/domain/models"
)

const dateLayout = "2006-01-02"

// Analytics is the aggregator slice the reporter folds with.
type Analytics interface {
	InvoicesForDay(ctx context.Context, day time.Time) ([]models.Invoice, error)
	ExpensesForDay(ctx context.Context, day time.Time) ([]models.Expense, error)
}

// ReportStore persists daily report snapshots.
type ReportStore interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
}

// Exporter appends the report to an external sheet. Optional.
type Exporter interface {
	AppendDailyReport(ctx context.Context, report models.DailyReport) error
}

// Notifier announces the report summary. Optional.
type Notifier interface {
	Send(ctx context.Context, title, message string) error
}

// Service runs the close-of-day report.
type Service struct {
	analytics Analytics
	store     ReportStore
	exporter  Exporter
	notifier  Notifier
	logger    *zap.Logger
}

// NewService wires a new reporting service. exporter and notifier may be
// nil; the corresponding delivery step is then skipped.
func NewService(analytics Analytics, store ReportStore, exporter Exporter, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		analytics: analytics,
		store:     store,
		exporter:  exporter,
		notifier:  notifier,
		logger:    logger,
	}
}

// RunDaily folds one calendar day into a DailyReport, persists it and
// pushes it to the optional delivery targets. Delivery failures are logged,
// not returned: the persisted snapshot is the authoritative outcome.
func (s *Service) RunDaily(ctx context.Context, day time.Time) (*models.DailyReport, error) {
	invoices, err := s.analytics.InvoicesForDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("load invoices for report: %w", err)
	}
	expenses, err := s.analytics.ExpensesForDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("load expenses for report: %w", err)
	}

	report := models.DailyReport{
		Date:         time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		InvoiceCount: len(invoices),
		CreatedAt:    time.Now().UTC(),
	}
	for _, invoice := range invoices {
		report.GrossSales += invoice.TotalBill
		report.DiscountGiven += invoice.TotalDiscount
	}
	for _, expense := range expenses {
		report.Expenses += expense.ExpenseAmount
	}
	report.NetSales = report.GrossSales - report.DiscountGiven - report.Expenses

	if err := s.store.SaveDailyReport(ctx, report); err != nil {
		return nil, fmt.Errorf("save daily report: %w", err)
	}

	if s.exporter != nil {
		if err := s.exporter.AppendDailyReport(ctx, report); err != nil {
			s.logger.Error("failed exporting daily report to sheet", zap.Error(err))
		}
	}
	if s.notifier != nil {
		if err := s.notifier.Send(ctx, "Daily sales report", FormatSummary(report)); err != nil {
			s.logger.Error("failed sending daily report notification", zap.Error(err))
		}
	}

	s.logger.Info("daily report completed",
		zap.String("date", report.Date.Format(dateLayout)),
		zap.Int("invoices", report.InvoiceCount),
		zap.Float64("gross_sales", report.GrossSales))
	return &report, nil
}

// FormatSummary renders the report as a short human-readable message.
func FormatSummary(report models.DailyReport) string {
	if report.InvoiceCount == 0 {
		return fmt.Sprintf("Report %s: no invoices recorded.", report.Date.Format(dateLayout))
	}
	return fmt.Sprintf("Report %s: %d invoices, gross %.2f, discounts %.2f, expenses %.2f, net %.2f.",
		report.Date.Format(dateLayout),
		report.InvoiceCount,
		report.GrossSales,
		report.DiscountGiven,
		report.Expenses,
		report.NetSales)
}
