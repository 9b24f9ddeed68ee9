// Package invoicing implements the invoice recorder: it validates the
// referenced table and staff, allocates the human-facing serial, persists
// the invoice and applies the member ledger delta when a member is named.
package invoicing

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/foodrepublic/pos-backend/internal/domain/models"
	"github.com/foodrepublic/pos-backend/internal/domain/validate"
	"github.com/foodrepublic/pos-backend/pkg/apperr"
)

// Store is the slice of the record store the invoice recorder needs.
type Store interface {
	InsertInvoice(ctx context.Context, invoice models.Invoice) (*models.Invoice, error)
	FindInvoiceByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error)
	FindInvoiceBySerial(ctx context.Context, serial int64) (*models.Invoice, error)
	FindTableByName(ctx context.Context, name string) (*models.Table, error)
	FindStaffByName(ctx context.Context, name string) (*models.Staff, error)
}

// SequenceAllocator hands out the next invoice serial.
type SequenceAllocator interface {
	NextSequence(ctx context.Context, name string) (int64, error)
}

// Ledger applies an invoice's financial delta to a member.
type Ledger interface {
	ApplyInvoice(ctx context.Context, mobile string, discountDelta, spendDelta float64, invoiceID primitive.ObjectID) (*models.Member, error)
}

// Service is the invoice recorder.
type Service struct {
	store  Store
	seq    SequenceAllocator
	ledger Ledger
	logger *zap.Logger
}

// NewService wires a new invoice recorder instance.
func NewService(store Store, seq SequenceAllocator, ledger Ledger, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, seq: seq, ledger: ledger, logger: logger}
}

// Create validates and persists a sold invoice.
//
// Sequence: validate references, allocate serial, insert invoice, apply the
// member ledger. The steps are causal, not transactional. Once the invoice
// is durably written it is authoritative: a ledger failure afterwards is
// surfaced as a KindLedgerFailed error with the created invoice still
// returned, never rolled back. A serial consumed by a failed insert is
// abandoned, leaving a gap.
func (s *Service) Create(ctx context.Context, req models.CreateInvoiceRequest) (*models.Invoice, error) {
	if req.TableName == "" || req.ServedBy == "" || len(req.Items) == 0 || req.TotalBill == 0 {
		return nil, apperr.Validationf("table name, served by name, items and total bill are required fields")
	}
	if req.TotalBill < 0 {
		return nil, apperr.Validationf("total bill must not be negative")
	}
	if req.TotalDiscount < 0 || req.TotalDiscount > req.TotalBill {
		return nil, apperr.Validationf("total discount must be between 0 and the total bill")
	}
	if req.Member != nil {
		if err := validate.Mobile(*req.Member); err != nil {
			return nil, err
		}
	}

	table, err := s.store.FindTableByName(ctx, req.TableName)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFoundf("wrong table request")
		}
		return nil, err
	}
	staff, err := s.store.FindStaffByName(ctx, req.ServedBy)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFoundf("wrong staff request")
		}
		return nil, err
	}

	serial, err := s.seq.NextSequence(ctx, "sold-invoices")
	if err != nil {
		return nil, err
	}

	invoice := models.Invoice{
		Serial:        serial,
		TableName:     table.Name,
		ServedBy:      staff.Name,
		Member:        req.Member,
		Items:         req.Items,
		TotalBill:     req.TotalBill,
		TotalDiscount: req.TotalDiscount,
		CreatedAt:     time.Now().UTC(),
	}

	created, err := s.store.InsertInvoice(ctx, invoice)
	if err != nil {
		return nil, err
	}

	s.logger.Info("invoice created",
		zap.Int64("fr_id", created.Serial),
		zap.String("table", created.TableName),
		zap.String("served_by", created.ServedBy),
		zap.Float64("total_bill", created.TotalBill))

	if req.Member != nil {
		if _, err := s.ledger.ApplyInvoice(ctx, *req.Member, created.TotalDiscount, created.TotalBill, created.ID); err != nil {
			s.logger.Error("ledger update failed after invoice write",
				zap.Int64("fr_id", created.Serial),
				zap.String("member", *req.Member),
				zap.Error(err))
			return created, apperr.Wrap(apperr.KindLedgerFailed,
				"invoice created but member ledger update failed", err)
		}
	}

	return created, nil
}

// GetByID returns a single invoice by its store id.
func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	return s.store.FindInvoiceByID(ctx, id)
}

// GetBySerial returns a single invoice by its human-facing serial.
func (s *Service) GetBySerial(ctx context.Context, serial int64) (*models.Invoice, error) {
	if serial <= 0 {
		return nil, apperr.Validationf("invalid serial number")
	}
	return s.store.FindInvoiceBySerial(ctx, serial)
}
