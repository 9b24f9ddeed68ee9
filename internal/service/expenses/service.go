// Package expenses records operating expenses against authenticated actors.
package expenses

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/foodrepublic/pos-backend/internal/domain/models"
	"github.com/foodrepublic/pos-backend/internal/domain/validate"
	"github.com/foodrepublic/pos-backend/pkg/apperr"
)

// Store is the slice of the record store the expense service needs.
type Store interface {
	InsertExpense(ctx context.Context, expense models.Expense) (*models.Expense, error)
	FindExpenseByID(ctx context.Context, id primitive.ObjectID) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id primitive.ObjectID) error
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service records and removes expenses.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a new expense service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Create validates and persists a new expense. The creator must be a known
// user; user provisioning itself lives in the auth layer.
func (s *Service) Create(ctx context.Context, req models.CreateExpenseRequest) (*models.Expense, error) {
	title := validate.NormalizeName(req.Title)
	if err := validate.Title(title); err != nil {
		return nil, err
	}
	if req.ExpenseAmount <= 0 {
		return nil, apperr.Validationf("expense amount should be a positive number")
	}

	user, err := s.store.FindUserByUsername(ctx, req.ExpenseCreator)
	if err != nil {
		return nil, err
	}

	expense := models.Expense{
		Title:          title,
		ExpenseAmount:  req.ExpenseAmount,
		ExpenseCreator: user.Username,
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.store.InsertExpense(ctx, expense)
	if err != nil {
		return nil, err
	}

	s.logger.Info("expense created",
		zap.String("title", created.Title),
		zap.Float64("amount", created.ExpenseAmount),
		zap.String("creator", created.ExpenseCreator))
	return created, nil
}

// GetByID returns a single expense by its store id.
func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Expense, error) {
	return s.store.FindExpenseByID(ctx, id)
}

// Delete removes an expense by its store id.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.store.FindExpenseByID(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteExpense(ctx, id)
}
