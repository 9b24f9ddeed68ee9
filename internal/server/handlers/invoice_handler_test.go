package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foodrepublic/pos-backend/internal/domain/models"
	"github.com/foodrepublic/pos-backend/internal/service/analytics"
	"github.com/foodrepublic/pos-backend/internal/service/invoicing"
	"github.com/foodrepublic/pos-backend/pkg/apperr"
)

// fakePOSStore backs both the invoicing and analytics services in-memory.
type fakePOSStore struct {
	mu       sync.Mutex
	invoices []models.Invoice
	expenses []models.Expense
}

func (f *fakePOSStore) InsertInvoice(_ context.Context, invoice models.Invoice) (*models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	invoice.ID = primitive.NewObjectID()
	f.invoices = append(f.invoices, invoice)
	return &invoice, nil
}

func (f *fakePOSStore) FindInvoiceByID(_ context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.invoices {
		if inv.ID == id {
			return &inv, nil
		}
	}
	return nil, apperr.NotFoundf("invoice not found")
}

func (f *fakePOSStore) FindInvoiceBySerial(_ context.Context, serial int64) (*models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.invoices {
		if inv.Serial == serial {
			return &inv, nil
		}
	}
	return nil, apperr.NotFoundf("invoice not found")
}

func (f *fakePOSStore) FindTableByName(_ context.Context, name string) (*models.Table, error) {
	if name == "table-1" {
		return &models.Table{ID: primitive.NewObjectID(), Name: name}, nil
	}
	return nil, apperr.NotFoundf("table not found")
}

func (f *fakePOSStore) FindStaffByName(_ context.Context, name string) (*models.Staff, error) {
	if name == "kamal" {
		return &models.Staff{ID: primitive.NewObjectID(), Name: name}, nil
	}
	return nil, apperr.NotFoundf("staff not found")
}

func (f *fakePOSStore) ListInvoicesInRange(_ context.Context, start, end time.Time) ([]models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Invoice
	for _, inv := range f.invoices {
		if !inv.CreatedAt.Before(start) && inv.CreatedAt.Before(end) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakePOSStore) ListExpensesInRange(_ context.Context, start, end time.Time) ([]models.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Expense
	for _, exp := range f.expenses {
		if !exp.CreatedAt.Before(start) && exp.CreatedAt.Before(end) {
			out = append(out, exp)
		}
	}
	return out, nil
}

type fakeSequences struct {
	mu       sync.Mutex
	counters map[string]int64
}

func (f *fakeSequences) NextSequence(_ context.Context, name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counters == nil {
		f.counters = make(map[string]int64)
	}
	f.counters[name]++
	return f.counters[name], nil
}

type noopLedger struct{}

func (noopLedger) ApplyInvoice(_ context.Context, mobile string, _, _ float64, _ primitive.ObjectID) (*models.Member, error) {
	return &models.Member{Mobile: mobile}, nil
}

func newInvoiceRouter(store *fakePOSStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	invoiceSvc := invoicing.NewService(store, &fakeSequences{}, noopLedger{}, nil)
	analyticsSvc := analytics.NewService(store, nil)
	handler := NewInvoiceHandler(invoiceSvc, analyticsSvc, nil)

	r := gin.New()
	r.POST("/api/v2/sold-invoice/add", handler.Create)
	r.GET("/api/v2/sold-invoice/query", handler.Query)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, target string, body any) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	envelope := make(map[string]json.RawMessage)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

func seedInvoice(t *testing.T, r *gin.Engine, createdOK bool) models.Invoice {
	t.Helper()

	w, envelope := doJSON(t, r, http.MethodPost, "/api/v2/sold-invoice/add", models.CreateInvoiceRequest{
		TableName: "table-1",
		ServedBy:  "kamal",
		Items: []models.InvoiceItem{
			{ItemName: "beef curry", ItemPrice: 250, ItemQty: 2},
		},
		TotalBill:     500,
		TotalDiscount: 50,
	})
	if createdOK {
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	var invoice models.Invoice
	require.NoError(t, json.Unmarshal(envelope["data"], &invoice))
	return invoice
}

func TestQueryRequiresAParameter(t *testing.T) {
	r := newInvoiceRouter(&fakePOSStore{})

	w, envelope := doJSON(t, r, http.MethodGet, "/api/v2/sold-invoice/query", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `false`, string(envelope["success"]))
}

func TestQueryBySerialAndID(t *testing.T) {
	r := newInvoiceRouter(&fakePOSStore{})
	created := seedInvoice(t, r, true)

	w, envelope := doJSON(t, r, http.MethodGet, "/api/v2/sold-invoice/query?serial=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var bySerial models.Invoice
	require.NoError(t, json.Unmarshal(envelope["data"], &bySerial))
	require.Equal(t, created.ID, bySerial.ID)

	w, envelope = doJSON(t, r, http.MethodGet, "/api/v2/sold-invoice/query?id="+created.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var byID models.Invoice
	require.NoError(t, json.Unmarshal(envelope["data"], &byID))
	require.Equal(t, int64(1), byID.Serial)

	w, _ = doJSON(t, r, http.MethodGet, "/api/v2/sold-invoice/query?serial=999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/v2/sold-invoice/query?id=not-a-hex-id", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueryByMonthEnvelope(t *testing.T) {
	store := &fakePOSStore{}
	r := newInvoiceRouter(store)
	seedInvoice(t, r, true)

	month := time.Now().UTC().Format("2006-01")
	w, envelope := doJSON(t, r, http.MethodGet, "/api/v2/sold-invoice/query?month="+month, nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, key := range []string{"invoices", "dailySellSummary", "minMaxSummary", "staffSellRecord", "no_data"} {
		require.Contains(t, envelope, key)
	}
	require.JSONEq(t, `false`, string(envelope["no_data"]))

	var totals []models.DailyTotal
	require.NoError(t, json.Unmarshal(envelope["dailySellSummary"], &totals))
	require.Len(t, totals, 1)
	require.Equal(t, float64(500), totals[0].DailySell)
}

func TestQueryByMonthNoData(t *testing.T) {
	r := newInvoiceRouter(&fakePOSStore{})

	w, envelope := doJSON(t, r, http.MethodGet, "/api/v2/sold-invoice/query?month=2020-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `true`, string(envelope["no_data"]))
}

func TestQueryByDate(t *testing.T) {
	r := newInvoiceRouter(&fakePOSStore{})
	seedInvoice(t, r, true)

	date := time.Now().UTC().Format("2006-01-02")
	w, envelope := doJSON(t, r, http.MethodGet, "/api/v2/sold-invoice/query?date="+date, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `false`, string(envelope["no_data"]))

	w, _ = doJSON(t, r, http.MethodGet, "/api/v2/sold-invoice/query?date=not-a-date", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
