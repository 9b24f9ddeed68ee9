// Package catalog manages the staff and table records the invoice recorder
// validates against.
package catalog

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/foodrepublic/pos-backend/internal/domain/models"
	"github.com/foodrepublic/pos-backend/internal/domain/validate"
	"github.com/foodrepublic/pos-backend/pkg/apperr"
)

// Store is the slice of the record store the catalog needs.
type Store interface {
	InsertStaff(ctx context.Context, staff models.Staff) (*models.Staff, error)
	FindStaffByName(ctx context.Context, name string) (*models.Staff, error)
	FindStaffByID(ctx context.Context, id primitive.ObjectID) (*models.Staff, error)
	ListStaff(ctx context.Context) ([]models.Staff, error)
	DeleteStaff(ctx context.Context, id primitive.ObjectID) error

	InsertTable(ctx context.Context, table models.Table) (*models.Table, error)
	FindTableByID(ctx context.Context, id primitive.ObjectID) (*models.Table, error)
	FindTableByName(ctx context.Context, name string) (*models.Table, error)
	ListTables(ctx context.Context) ([]models.Table, error)
	RenameTable(ctx context.Context, id primitive.ObjectID, name string) (*models.Table, error)
	DeleteTable(ctx context.Context, id primitive.ObjectID) error
}

// SequenceAllocator hands out table numbers for the table-N naming scheme.
type SequenceAllocator interface {
	NextSequence(ctx context.Context, name string) (int64, error)
}

// Service manages staff and tables.
type Service struct {
	store  Store
	seq    SequenceAllocator
	logger *zap.Logger
}

// NewService wires a new catalog service instance.
func NewService(store Store, seq SequenceAllocator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, seq: seq, logger: logger}
}

// CreateStaff registers a serving staff member under a normalized name.
func (s *Service) CreateStaff(ctx context.Context, req models.CreateStaffRequest) (*models.Staff, error) {
	name := validate.NormalizeName(req.Name)
	if err := validate.PersonName(name, "staff name"); err != nil {
		return nil, err
	}

	if _, err := s.store.FindStaffByName(ctx, name); err == nil {
		return nil, apperr.Conflictf("staff name already exists")
	} else if apperr.KindOf(err) != apperr.KindNotFound {
		return nil, err
	}

	created, err := s.store.InsertStaff(ctx, models.Staff{Name: name, CreatedAt: time.Now().UTC()})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return nil, apperr.Conflictf("staff name already exists")
		}
		return nil, err
	}

	s.logger.Info("staff created", zap.String("name", created.Name))
	return created, nil
}

// GetStaff returns a single staff record by store id.
func (s *Service) GetStaff(ctx context.Context, id primitive.ObjectID) (*models.Staff, error) {
	return s.store.FindStaffByID(ctx, id)
}

// ListStaff returns all staff, name ascending.
func (s *Service) ListStaff(ctx context.Context) ([]models.Staff, error) {
	return s.store.ListStaff(ctx)
}

// DeleteStaff removes a staff record. Existing invoices keep the name.
func (s *Service) DeleteStaff(ctx context.Context, id primitive.ObjectID) error {
	return s.store.DeleteStaff(ctx, id)
}

// CreateTable creates a table named table-N, N taken from the tables
// sequence so concurrent creations never collide on a name.
func (s *Service) CreateTable(ctx context.Context) (*models.Table, error) {
	n, err := s.seq.NextSequence(ctx, "tables")
	if err != nil {
		return nil, err
	}

	table := models.Table{
		Name:      fmt.Sprintf("table-%d", n),
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.store.InsertTable(ctx, table)
	if err != nil {
		return nil, err
	}

	s.logger.Info("table created", zap.String("name", created.Name))
	return created, nil
}

// GetTable returns a single table by store id.
func (s *Service) GetTable(ctx context.Context, id primitive.ObjectID) (*models.Table, error) {
	return s.store.FindTableByID(ctx, id)
}

// GetTableByName returns a single table by name.
func (s *Service) GetTableByName(ctx context.Context, name string) (*models.Table, error) {
	if validate.NormalizeTableName(name) == "" {
		return nil, apperr.Validationf("table name is required")
	}
	return s.store.FindTableByName(ctx, name)
}

// ListTables returns all tables in creation order.
func (s *Service) ListTables(ctx context.Context) ([]models.Table, error) {
	return s.store.ListTables(ctx)
}

// RenameTable renames a table to a normalized, unique name.
func (s *Service) RenameTable(ctx context.Context, id primitive.ObjectID, req models.RenameTableRequest) (*models.Table, error) {
	name := validate.NormalizeTableName(req.Name)
	if err := validate.PersonName(name, "table name"); err != nil {
		return nil, err
	}

	if _, err := s.store.FindTableByID(ctx, id); err != nil {
		return nil, err
	}

	if existing, err := s.store.FindTableByName(ctx, name); err == nil && existing.ID != id {
		return nil, apperr.Conflictf("this table name already exists")
	} else if err != nil && apperr.KindOf(err) != apperr.KindNotFound {
		return nil, err
	}

	return s.store.RenameTable(ctx, id, name)
}

// DeleteTable removes a table record.
func (s *Service) DeleteTable(ctx context.Context, id primitive.ObjectID) error {
	return s.store.DeleteTable(ctx, id)
}
