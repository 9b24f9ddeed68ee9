package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/foodrepublic/pos-backend/internal/domain/models"
)

type fakeAnalytics struct {
	invoices []models.Invoice
	expenses []models.Expense
}

func (f *fakeAnalytics) InvoicesForDay(_ context.Context, _ time.Time) ([]models.Invoice, error) {
	return f.invoices, nil
}

func (f *fakeAnalytics) ExpensesForDay(_ context.Context, _ time.Time) ([]models.Expense, error) {
	return f.expenses, nil
}

type fakeReportStore struct {
	saved []models.DailyReport
	err   error
}

func (f *fakeReportStore) SaveDailyReport(_ context.Context, report models.DailyReport) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, report)
	return nil
}

type fakeNotifier struct {
	titles   []string
	messages []string
	err      error
}

func (f *fakeNotifier) Send(_ context.Context, title, message string) error {
	if f.err != nil {
		return f.err
	}
	f.titles = append(f.titles, title)
	f.messages = append(f.messages, message)
	return nil
}

func TestRunDailyFoldsTotals(t *testing.T) {
	analytics := &fakeAnalytics{
		invoices: []models.Invoice{
			{TotalBill: 500, TotalDiscount: 50},
			{TotalBill: 300, TotalDiscount: 0},
		},
		expenses: []models.Expense{
			{ExpenseAmount: 120},
		},
	}
	store := &fakeReportStore{}
	notifier := &fakeNotifier{}
	svc := NewService(analytics, store, nil, notifier, nil)

	day := time.Date(2024, time.May, 1, 17, 30, 0, 0, time.UTC)
	report, err := svc.RunDaily(context.Background(), day)
	require.NoError(t, err)

	require.Equal(t, 2, report.InvoiceCount)
	require.Equal(t, float64(800), report.GrossSales)
	require.Equal(t, float64(50), report.DiscountGiven)
	require.Equal(t, float64(120), report.Expenses)
	require.Equal(t, float64(630), report.NetSales)
	require.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), report.Date)

	require.Len(t, store.saved, 1)
	require.Len(t, notifier.messages, 1)
	require.Contains(t, notifier.messages[0], "2 invoices")
}

func TestRunDailyDeliveryFailureIsNotFatal(t *testing.T) {
	analytics := &fakeAnalytics{invoices: []models.Invoice{{TotalBill: 100}}}
	store := &fakeReportStore{}
	notifier := &fakeNotifier{err: errors.New("webhook down")}
	svc := NewService(analytics, store, nil, notifier, nil)

	report, err := svc.RunDaily(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	require.NotNil(t, report)
	require.Len(t, store.saved, 1)
}

func TestRunDailySaveFailure(t *testing.T) {
	svc := NewService(&fakeAnalytics{}, &fakeReportStore{err: errors.New("store down")}, nil, nil, nil)

	_, err := svc.RunDaily(context.Background(), time.Now().UTC())
	require.Error(t, err)
}

func TestFormatSummary(t *testing.T) {
	empty := models.DailyReport{Date: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)}
	require.Equal(t, "Report 2024-05-01: no invoices recorded.", FormatSummary(empty))

	full := models.DailyReport{
		Date:          time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		InvoiceCount:  3,
		GrossSales:    1000,
		DiscountGiven: 100,
		Expenses:      200,
		NetSales:      700,
	}
	require.Contains(t, FormatSummary(full), "3 invoices")
	require.Contains(t, FormatSummary(full), "net 700.00")
}
