package models

// CreateInvoiceRequest is the inbound payload for selling an invoice.
// Member, when present, must be a registered member's mobile number.
type CreateInvoiceRequest struct {
	TableName     string        `json:"table_name" binding:"required"`
	ServedBy      string        `json:"served_by" binding:"required"`
	Member        *string       `json:"member"`
	Items         []InvoiceItem `json:"items" binding:"required"`
	TotalBill     float64       `json:"total_bill" binding:"required"`
	TotalDiscount float64       `json:"total_discount"`
}

// CreateMemberRequest registers a new member.
type CreateMemberRequest struct {
	Name   string `json:"name" binding:"required"`
	Mobile string `json:"mobile" binding:"required"`
}

// EditMemberRequest patches non-financial member fields. The mobile number
// itself is immutable.
type EditMemberRequest struct {
	Name          *string `json:"name"`
	DiscountValue *int    `json:"discountValue"`
}

// ApplyInvoiceRequest applies a financial delta to a member's ledger.
type ApplyInvoiceRequest struct {
	Discount  float64 `json:"discount"`
	TotalBill float64 `json:"total_bill"`
	Invoice   string  `json:"invoice" binding:"required"`
}

// CreateExpenseRequest records a new expense.
type CreateExpenseRequest struct {
	Title          string  `json:"title" binding:"required"`
	ExpenseAmount  float64 `json:"expense_amount" binding:"required"`
	ExpenseCreator string  `json:"expense_creator" binding:"required"`
}

// CreateStaffRequest registers a serving staff member.
type CreateStaffRequest struct {
	Name string `json:"name" binding:"required"`
}

// RenameTableRequest renames an existing table.
type RenameTableRequest struct {
	Name string `json:"name" binding:"required"`
}
