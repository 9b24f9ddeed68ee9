package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Expense is a time-stamped operating cost. It has no ledger relationship;
// the aggregator folds it into daily totals only.
type Expense struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title          string             `bson:"title" json:"title"`
	ExpenseAmount  float64            `bson:"expense_amount" json:"expense_amount"`
	ExpenseCreator string             `bson:"expense_creator" json:"expense_creator"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
