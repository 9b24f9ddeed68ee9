package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/foodrepublic/pos-backend/internal/domain/models"
	"github.com/foodrepublic/pos-backend/internal/service/catalog"
)

// CatalogHandler handles the staff and table collaborator endpoints.
type CatalogHandler struct {
	svc    *catalog.Service
	logger *zap.Logger
}

// NewCatalogHandler constructs the HTTP handler adapter.
func NewCatalogHandler(svc *catalog.Service, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{svc: svc, logger: logger}
}

// CreateStaff registers a serving staff member.
func (h *CatalogHandler) CreateStaff(c *gin.Context) {
	var req models.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "staff name is required")
		return
	}

	staff, err := h.svc.CreateStaff(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "staff created successfully",
		"staff":   staff,
	})
}

// ListStaff returns all staff.
func (h *CatalogHandler) ListStaff(c *gin.Context) {
	staffs, err := h.svc.ListStaff(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "all staffs retrieved successfully",
		"staffs":  staffs,
	})
}

// GetStaff returns a single staff member by id.
func (h *CatalogHandler) GetStaff(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid staff id")
		return
	}

	staff, err := h.svc.GetStaff(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "staff retrieved successfully",
		"staff":   staff,
	})
}

// DeleteStaff removes a staff member.
func (h *CatalogHandler) DeleteStaff(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid staff id")
		return
	}

	if err := h.svc.DeleteStaff(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "staff deleted successfully",
	})
}

// CreateTable creates the next auto-named table.
func (h *CatalogHandler) CreateTable(c *gin.Context) {
	table, err := h.svc.CreateTable(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "table created successfully",
		"table":   table,
	})
}

// ListTables returns all tables.
func (h *CatalogHandler) ListTables(c *gin.Context) {
	tables, err := h.svc.ListTables(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "all tables retrieved successfully",
		"tables":  tables,
	})
}

// GetTable returns a single table by id.
func (h *CatalogHandler) GetTable(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid table id")
		return
	}

	table, err := h.svc.GetTable(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "table retrieved successfully",
		"table":   table,
	})
}

// GetTableByName returns a single table by name.
func (h *CatalogHandler) GetTableByName(c *gin.Context) {
	table, err := h.svc.GetTableByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "table retrieved successfully",
		"table":   table,
	})
}

// RenameTable renames a table.
func (h *CatalogHandler) RenameTable(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid table id")
		return
	}

	var req models.RenameTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "table name is required")
		return
	}

	table, err := h.svc.RenameTable(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "table name edited successfully",
		"table":   table,
	})
}

// DeleteTable removes a table.
func (h *CatalogHandler) DeleteTable(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid table id")
		return
	}

	if err := h.svc.DeleteTable(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "table deleted successfully",
	})
}
