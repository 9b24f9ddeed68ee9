// Package members implements the member ledger manager: member lifecycle
// plus the append-only financial ledger (running spend and discount sums and
// the invoice history) kept consistent with the invoices that reference it.
package members

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/foodrepublic/pos-backend/internal/domain/models"
	"github.com/foodrepublic/pos-backend/internal/domain/validate"
	"github.com/foodrepublic/pos-backend/pkg/apperr"
)

const defaultDiscountValue = 10

// Store is the slice of the record store the ledger manager needs.
type Store interface {
	InsertMember(ctx context.Context, member models.Member) (*models.Member, error)
	FindMemberByMobile(ctx context.Context, mobile string) (*models.Member, error)
	ApplyMemberDelta(ctx context.Context, mobile string, discountDelta, spendDelta float64, invoiceID primitive.ObjectID) (*models.Member, error)
	UpdateMemberInfo(ctx context.Context, mobile string, name *string, discountValue *int) (*models.Member, error)
	DeleteMember(ctx context.Context, mobile string) error
	ListMembers(ctx context.Context, search string, page, limit int) (*models.MemberPage, error)
}

// SequenceAllocator hands out the next member serial.
type SequenceAllocator interface {
	NextSequence(ctx context.Context, name string) (int64, error)
}

// Service is the member ledger manager.
type Service struct {
	store  Store
	seq    SequenceAllocator
	logger *zap.Logger
}

// NewService wires a new member service instance.
func NewService(store Store, seq SequenceAllocator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, seq: seq, logger: logger}
}

// Create registers a new member with a freshly allocated member serial and a
// zeroed ledger. The mobile number is the natural key and must be unique.
func (s *Service) Create(ctx context.Context, req models.CreateMemberRequest) (*models.Member, error) {
	name := validate.NormalizeName(req.Name)
	if err := validate.PersonName(name, "name"); err != nil {
		return nil, err
	}
	if err := validate.Mobile(req.Mobile); err != nil {
		return nil, err
	}

	if _, err := s.store.FindMemberByMobile(ctx, req.Mobile); err == nil {
		return nil, apperr.Conflictf("member already exists")
	} else if apperr.KindOf(err) != apperr.KindNotFound {
		return nil, err
	}

	serial, err := s.seq.NextSequence(ctx, "members")
	if err != nil {
		return nil, err
	}

	member := models.Member{
		MemberSerial:  serial,
		Name:          name,
		Mobile:        req.Mobile,
		DiscountValue: defaultDiscountValue,
		InvoicesCode:  []primitive.ObjectID{},
		CreatedAt:     time.Now().UTC(),
	}

	created, err := s.store.InsertMember(ctx, member)
	if err != nil {
		// A racing creator can still win the unique mobile index.
		if apperr.KindOf(err) == apperr.KindConflict {
			return nil, apperr.Conflictf("member already exists")
		}
		return nil, err
	}

	s.logger.Info("member created",
		zap.Int64("member_serial", created.MemberSerial),
		zap.String("mobile", created.Mobile))
	return created, nil
}

// ApplyInvoice applies one invoice's financial delta to the member ledger:
// both running sums grow by their delta and the invoice reference is
// appended. The store applies all of it as one atomic document update, so
// concurrent invoices for the same member serialize without lost updates.
func (s *Service) ApplyInvoice(ctx context.Context, mobile string, discountDelta, spendDelta float64, invoiceID primitive.ObjectID) (*models.Member, error) {
	if err := validate.Mobile(mobile); err != nil {
		return nil, err
	}
	if discountDelta < 0 || spendDelta < 0 {
		return nil, apperr.Validationf("ledger deltas must not be negative")
	}
	if invoiceID.IsZero() {
		return nil, apperr.Validationf("invalid invoice id")
	}

	member, err := s.store.ApplyMemberDelta(ctx, mobile, discountDelta, spendDelta, invoiceID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ledger applied",
		zap.String("mobile", mobile),
		zap.Float64("spend_delta", spendDelta),
		zap.Float64("discount_delta", discountDelta),
		zap.String("invoice_id", invoiceID.Hex()))
	return member, nil
}

// EditInformation patches the non-financial member fields. The mobile number
// is immutable once set.
func (s *Service) EditInformation(ctx context.Context, mobile string, req models.EditMemberRequest) (*models.Member, error) {
	if err := validate.Mobile(mobile); err != nil {
		return nil, err
	}
	if req.Name == nil && req.DiscountValue == nil {
		return nil, apperr.Validationf("no fields provided for update")
	}

	var name *string
	if req.Name != nil {
		normalized := validate.NormalizeName(*req.Name)
		if err := validate.PersonName(normalized, "name"); err != nil {
			return nil, err
		}
		name = &normalized
	}
	if req.DiscountValue != nil && (*req.DiscountValue < 0 || *req.DiscountValue > 100) {
		return nil, apperr.Validationf("discount value must be a percentage between 0 and 100")
	}

	return s.store.UpdateMemberInfo(ctx, mobile, name, req.DiscountValue)
}

// Delete removes the member. Invoices that reference the member keep their
// reference; there is no cascading integrity repair.
func (s *Service) Delete(ctx context.Context, mobile string) error {
	if err := validate.Mobile(mobile); err != nil {
		return err
	}
	return s.store.DeleteMember(ctx, mobile)
}

// GetByMobile returns a single member by their natural key.
func (s *Service) GetByMobile(ctx context.Context, mobile string) (*models.Member, error) {
	if err := validate.Mobile(mobile); err != nil {
		return nil, err
	}
	return s.store.FindMemberByMobile(ctx, mobile)
}

// List returns one page of members whose name or mobile contains the search
// term, case-insensitively.
func (s *Service) List(ctx context.Context, search string, page, limit int) (*models.MemberPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 100
	}
	return s.store.ListMembers(ctx, search, page, limit)
}
