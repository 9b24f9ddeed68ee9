package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/foodrepublic/pos-backend/internal/domain/models"
	"github.com/foodrepublic/pos-backend/internal/service/members"
)

// MemberHandler handles member lifecycle and ledger endpoints.
type MemberHandler struct {
	svc    *members.Service
	logger *zap.Logger
}

// NewMemberHandler constructs the HTTP handler adapter.
func NewMemberHandler(svc *members.Service, logger *zap.Logger) *MemberHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemberHandler{svc: svc, logger: logger}
}

// Create registers a new member.
func (h *MemberHandler) Create(c *gin.Context) {
	var req models.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid member payload", zap.Error(err))
		badRequest(c, "name and mobile are required")
		return
	}

	member, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "member created successfully",
		"data":    member,
	})
}

// List returns one page of members matching the search term.
func (h *MemberHandler) List(c *gin.Context) {
	search := c.Query("search")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	pageData, err := h.svc.List(c.Request.Context(), search, page, limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "members retrieved successfully",
		"members":    pageData.Members,
		"pagination": pageData.Pagination,
	})
}

// Get returns a single member by mobile number.
func (h *MemberHandler) Get(c *gin.Context) {
	member, err := h.svc.GetByMobile(c.Request.Context(), c.Param("mobile"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "member retrieved successfully",
		"data":    member,
	})
}

// EditInformation patches non-financial member fields.
func (h *MemberHandler) EditInformation(c *gin.Context) {
	var req models.EditMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid member edit payload", zap.Error(err))
		badRequest(c, "invalid request body")
		return
	}

	member, err := h.svc.EditInformation(c.Request.Context(), c.Param("mobile"), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "member information updated successfully",
		"data":    member,
	})
}

// UpdateLedger applies an invoice's financial delta to the member ledger.
// Normally driven by invoice creation; exposed for ledger retries after a
// reported ledger failure.
func (h *MemberHandler) UpdateLedger(c *gin.Context) {
	var req models.ApplyInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid ledger payload", zap.Error(err))
		badRequest(c, "all fields are required")
		return
	}

	invoiceID, err := primitive.ObjectIDFromHex(req.Invoice)
	if err != nil {
		badRequest(c, "invalid invoice id")
		return
	}

	member, err := h.svc.ApplyInvoice(c.Request.Context(), c.Param("mobile"), req.Discount, req.TotalBill, invoiceID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "member data updated successfully",
		"data":    member,
	})
}

// Delete removes a member. Invoice references held by the member dangle.
func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("mobile")); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "member deleted successfully",
	})
}
