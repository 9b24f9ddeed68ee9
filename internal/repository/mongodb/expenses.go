package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/foodrepublic/pos-backend/internal/domain/models"
	"github.com/foodrepublic/pos-backend/pkg/apperr"
)

// InsertExpense persists a new expense and returns it with the assigned id.
func (s *Store) InsertExpense(ctx context.Context, expense models.Expense) (*models.Expense, error) {
	res, err := s.db.Collection(collExpenses).InsertOne(ctx, expense)
	if err != nil {
		return nil, storeErr("insert expense", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		expense.ID = oid
	}
	return &expense, nil
}

// FindExpenseByID returns the expense with the given store id.
func (s *Store) FindExpenseByID(ctx context.Context, id primitive.ObjectID) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.Collection(collExpenses).FindOne(ctx, bson.M{"_id": id}).Decode(&expense)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("expense not found")
	}
	if err != nil {
		return nil, storeErr("find expense by id", err)
	}
	return &expense, nil
}

// DeleteExpense removes the expense with the given id.
func (s *Store) DeleteExpense(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.db.Collection(collExpenses).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeErr("delete expense", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFoundf("expense not found")
	}
	return nil
}

// ListExpensesInRange returns expenses created inside [start, end), ordered
// by creation time ascending.
func (s *Store) ListExpensesInRange(ctx context.Context, start, end time.Time) ([]models.Expense, error) {
	filter := bson.M{"createdAt": bson.M{"$gte": start, "$lt": end}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := s.db.Collection(collExpenses).Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("list expenses in range", err)
	}

	var expenses []models.Expense
	if err := cursor.All(ctx, &expenses); err != nil {
		return nil, storeErr("decode expenses in range", err)
	}
	return expenses, nil
}

// FindUserByUsername returns the user record for an expense creator lookup.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.Collection(collUsers).FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("invalid user")
	}
	if err != nil {
		return nil, storeErr("find user by username", err)
	}
	return &user, nil
}
