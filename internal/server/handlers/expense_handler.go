package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/foodrepublic/pos-backend/internal/domain/models"
	"github.com/foodrepublic/pos-backend/internal/service/analytics"
	"github.com/foodrepublic/pos-backend/internal/service/expenses"
)

// ExpenseHandler handles expense recording and the expense query router.
type ExpenseHandler struct {
	svc       *expenses.Service
	analytics *analytics.Service
	logger    *zap.Logger
}

// NewExpenseHandler constructs the HTTP handler adapter.
func NewExpenseHandler(svc *expenses.Service, analyticsSvc *analytics.Service, logger *zap.Logger) *ExpenseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpenseHandler{svc: svc, analytics: analyticsSvc, logger: logger}
}

// Create records a new expense.
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid expense payload", zap.Error(err))
		badRequest(c, "missing required field")
		return
	}

	expense, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "expense created",
		"data":    expense,
	})
}

// Delete removes an expense by id.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid id")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "expense deleted successfully",
	})
}

// Find routes ?id=, ?date= and ?startDate=&endDate= to the matching lookup
// or day-grouped aggregation.
func (h *ExpenseHandler) Find(c *gin.Context) {
	id := c.Query("id")
	date := c.Query("date")
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	switch {
	case id != "":
		h.findByID(c, id)
	case date != "":
		h.findByDate(c, date)
	case startDate != "" && endDate != "":
		h.findByRange(c, startDate, endDate)
	default:
		badRequest(c, "at least one query parameter must be provided")
	}
}

func (h *ExpenseHandler) findByID(c *gin.Context, id string) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		badRequest(c, "invalid id")
		return
	}

	expense, err := h.svc.GetByID(c.Request.Context(), oid)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "expense retrieved successfully",
		"data":    expense,
	})
}

func (h *ExpenseHandler) findByDate(c *gin.Context, date string) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		badRequest(c, "invalid date format. please provide a valid date.")
		return
	}

	list, err := h.analytics.ExpensesForDay(c.Request.Context(), day)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "data retrieved successfully",
		"data":    list,
		"no_data": len(list) == 0,
	})
}

func (h *ExpenseHandler) findByRange(c *gin.Context, startDate, endDate string) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		badRequest(c, "invalid date format. please provide valid dates.")
		return
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		badRequest(c, "invalid date format. please provide valid dates.")
		return
	}
	if end.Before(start) {
		badRequest(c, "end date must not be before start date")
		return
	}

	groups, err := h.analytics.ExpenseRange(c.Request.Context(), start, end)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "expense data retrieved successfully",
		"data":    groups,
		"no_data": len(groups) == 0,
	})
}
