package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InvoiceItem is one line of a sold invoice. The core treats items as opaque
// data; only the invoice-level totals participate in ledger and analytics.
type InvoiceItem struct {
	ItemName  string  `bson:"item_name" json:"item_name"`
	ItemPrice float64 `bson:"item_price" json:"item_price"`
	ItemQty   int     `bson:"item_qty" json:"item_qty"`
}

// Invoice is a persisted sold invoice. Serial, TotalBill and CreatedAt are
// assigned once at creation; no update path exists.
type Invoice struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Serial        int64              `bson:"fr_id" json:"fr_id"`
	TableName     string             `bson:"table_name" json:"table_name"`
	ServedBy      string             `bson:"served_by" json:"served_by"`
	Member        *string            `bson:"member" json:"member"`
	Items         []InvoiceItem      `bson:"items" json:"items"`
	TotalBill     float64            `bson:"total_bill" json:"total_bill"`
	TotalDiscount float64            `bson:"total_discount" json:"total_discount"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
