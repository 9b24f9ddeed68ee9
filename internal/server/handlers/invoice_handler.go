package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/foodrepublic/pos-backend/internal/domain/models"
	"github.com/foodrepublic/pos-backend/internal/service/analytics"
	"github.com/foodrepublic/pos-backend/internal/service/invoicing"
	"github.com/foodrepublic/pos-backend/pkg/apperr"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// InvoiceHandler handles invoice creation and the invoice query router:
// point lookups by id or serial, and day/month aggregation windows.
type InvoiceHandler struct {
	svc       *invoicing.Service
	analytics *analytics.Service
	logger    *zap.Logger
}

// NewInvoiceHandler constructs the HTTP handler adapter.
func NewInvoiceHandler(svc *invoicing.Service, analyticsSvc *analytics.Service, logger *zap.Logger) *InvoiceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceHandler{svc: svc, analytics: analyticsSvc, logger: logger}
}

// Create sells an invoice. A ledger failure after the durable invoice write
// is answered with the error envelope plus the created invoice, so callers
// can retry just the ledger step.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req models.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid invoice payload", zap.Error(err))
		badRequest(c, "table name, served by name, items and total bill are required fields")
		return
	}

	invoice, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindLedgerFailed {
			c.JSON(apperr.HTTPStatus(err), gin.H{
				"success": false,
				"message": apperr.Message(err),
				"data":    invoice,
			})
			return
		}
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "invoice created",
		"data":    invoice,
	})
}

// Query routes ?id=, ?serial=, ?date= and ?month= to the matching lookup or
// aggregation. At least one parameter is required; the first present one in
// that order wins.
func (h *InvoiceHandler) Query(c *gin.Context) {
	id := c.Query("id")
	serial := c.Query("serial")
	date := c.Query("date")
	month := c.Query("month")

	switch {
	case id != "":
		h.queryByID(c, id)
	case serial != "":
		h.queryBySerial(c, serial)
	case date != "":
		h.queryByDate(c, date)
	case month != "":
		h.queryByMonth(c, month)
	default:
		badRequest(c, "at least one query parameter must be provided")
	}
}

func (h *InvoiceHandler) queryByID(c *gin.Context, id string) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		badRequest(c, "invalid id")
		return
	}

	invoice, err := h.svc.GetByID(c.Request.Context(), oid)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "invoice retrieved successfully",
		"data":    invoice,
	})
}

func (h *InvoiceHandler) queryBySerial(c *gin.Context, serial string) {
	n, err := strconv.ParseInt(serial, 10, 64)
	if err != nil {
		badRequest(c, "invalid serial number")
		return
	}

	invoice, err := h.svc.GetBySerial(c.Request.Context(), n)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "invoice retrieved successfully",
		"data":    invoice,
	})
}

func (h *InvoiceHandler) queryByDate(c *gin.Context, date string) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		badRequest(c, "invalid date format. please provide a valid date.")
		return
	}

	invoices, err := h.analytics.InvoicesForDay(c.Request.Context(), day)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "invoices retrieved successfully",
		"data":    invoices,
		"no_data": len(invoices) == 0,
	})
}

func (h *InvoiceHandler) queryByMonth(c *gin.Context, month string) {
	firstOfMonth, err := time.Parse(monthLayout, month)
	if err != nil {
		badRequest(c, "invalid month format. please provide a valid month.")
		return
	}

	summary, err := h.analytics.MonthlySummary(c.Request.Context(), firstOfMonth.Year(), firstOfMonth.Month())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          "invoices and daily totals retrieved successfully",
		"invoices":         summary.Invoices,
		"dailySellSummary": summary.DailyTotals,
		"minMaxSummary":    summary.MinMax,
		"staffSellRecord":  summary.StaffRecords,
		"no_data":          summary.NoData,
	})
}
