package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/foodrepublic/pos-backend/internal/server/handlers"
)

// Handlers groups the HTTP adapters the router wires.
type Handlers struct {
	Invoice *handlers.InvoiceHandler
	Member  *handlers.MemberHandler
	Expense *handlers.ExpenseHandler
	Catalog *handlers.CatalogHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api/v2")

	invoice := api.Group("/sold-invoice")
	invoice.POST("/add", h.Invoice.Create)
	invoice.GET("/query", h.Invoice.Query)

	member := api.Group("/member")
	member.POST("/create", h.Member.Create)
	member.GET("/members", h.Member.List)
	member.GET("/:mobile", h.Member.Get)
	member.PATCH("/edit/information/:mobile", h.Member.EditInformation)
	member.PATCH("/update/:mobile", h.Member.UpdateLedger)
	member.DELETE("/delete/:mobile", h.Member.Delete)

	expense := api.Group("/expense")
	expense.POST("/create", h.Expense.Create)
	expense.GET("/find", h.Expense.Find)
	expense.DELETE("/delete/:id", h.Expense.Delete)

	staff := api.Group("/staff")
	staff.POST("/create", h.Catalog.CreateStaff)
	staff.GET("/staffs", h.Catalog.ListStaff)
	staff.GET("/:id", h.Catalog.GetStaff)
	staff.DELETE("/delete/:id", h.Catalog.DeleteStaff)

	table := api.Group("/table")
	table.POST("/create", h.Catalog.CreateTable)
	table.GET("/tables", h.Catalog.ListTables)
	table.GET("/:id", h.Catalog.GetTable)
	table.GET("/table-name/:name", h.Catalog.GetTableByName)
	table.PATCH("/edit/:id", h.Catalog.RenameTable)
	table.DELETE("/delete/:id", h.Catalog.DeleteTable)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
