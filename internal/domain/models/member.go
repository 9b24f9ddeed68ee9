package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is a registered customer identified by their mobile number. The
// running sums and invoice list form the member's ledger: TotalSpent and
// TotalDiscount always equal the fold of total_bill / total_discount over
// the invoices in InvoicesCode. Both lists are append-only; no operation
// decrements the sums.
type Member struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	MemberSerial  int64                `bson:"member_serial" json:"member_serial"`
	Name          string               `bson:"name" json:"name"`
	Mobile        string               `bson:"mobile" json:"mobile"`
	DiscountValue int                  `bson:"discount_value" json:"discount_value"`
	TotalDiscount float64              `bson:"total_discount" json:"total_discount"`
	TotalSpent    float64              `bson:"total_spent" json:"total_spent"`
	InvoicesCode  []primitive.ObjectID `bson:"invoices_code" json:"invoices_code"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// MemberPage carries one page of a member listing.
type MemberPage struct {
	Members    []Member   `json:"members"`
	Pagination Pagination `json:"pagination"`
}

// Pagination describes the page window of a listing response.
type Pagination struct {
	TotalPages   int  `json:"totalPages"`
	CurrentPage  int  `json:"currentPage"`
	PreviousPage *int `json:"previousPage"`
	NextPage     *int `json:"nextPage"`
}
