package members

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foodrepublic/pos-backend/internal/domain/models"
	"github.com/foodrepublic/pos-backend/pkg/apperr"
)

type fakeMemberStore struct {
	mu      sync.Mutex
	members map[string]models.Member
}

func newFakeMemberStore() *fakeMemberStore {
	return &fakeMemberStore{members: make(map[string]models.Member)}
}

func (f *fakeMemberStore) InsertMember(_ context.Context, member models.Member) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.members[member.Mobile]; ok {
		return nil, apperr.Conflictf("duplicate key")
	}
	member.ID = primitive.NewObjectID()
	f.members[member.Mobile] = member
	return &member, nil
}

func (f *fakeMemberStore) FindMemberByMobile(_ context.Context, mobile string) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	member, ok := f.members[mobile]
	if !ok {
		return nil, apperr.NotFoundf("member not found")
	}
	return &member, nil
}

func (f *fakeMemberStore) ApplyMemberDelta(_ context.Context, mobile string, discountDelta, spendDelta float64, invoiceID primitive.ObjectID) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	member, ok := f.members[mobile]
	if !ok {
		return nil, apperr.NotFoundf("member not found")
	}
	member.TotalDiscount += discountDelta
	member.TotalSpent += spendDelta
	member.InvoicesCode = append(member.InvoicesCode, invoiceID)
	f.members[mobile] = member
	return &member, nil
}

func (f *fakeMemberStore) UpdateMemberInfo(_ context.Context, mobile string, name *string, discountValue *int) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	member, ok := f.members[mobile]
	if !ok {
		return nil, apperr.NotFoundf("member not found")
	}
	if name != nil {
		member.Name = *name
	}
	if discountValue != nil {
		member.DiscountValue = *discountValue
	}
	f.members[mobile] = member
	return &member, nil
}

func (f *fakeMemberStore) DeleteMember(_ context.Context, mobile string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.members[mobile]; !ok {
		return apperr.NotFoundf("member not found")
	}
	delete(f.members, mobile)
	return nil
}

func (f *fakeMemberStore) ListMembers(_ context.Context, _ string, page, limit int) (*models.MemberPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := make([]models.Member, 0, len(f.members))
	for _, m := range f.members {
		list = append(list, m)
	}
	return &models.MemberPage{
		Members:    list,
		Pagination: models.Pagination{TotalPages: 1, CurrentPage: page},
	}, nil
}

type fakeSequences struct {
	mu       sync.Mutex
	counters map[string]int64
}

func newFakeSequences() *fakeSequences {
	return &fakeSequences{counters: make(map[string]int64)}
}

func (f *fakeSequences) NextSequence(_ context.Context, name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters[name]++
	return f.counters[name], nil
}

const validMobile = "01712345678"

func newTestService() (*Service, *fakeMemberStore) {
	store := newFakeMemberStore()
	return NewService(store, newFakeSequences(), nil), store
}

func TestCreateAssignsSerialAndDefaults(t *testing.T) {
	svc, _ := newTestService()

	member, err := svc.Create(context.Background(), models.CreateMemberRequest{
		Name:   "  Rahim   Uddin ",
		Mobile: validMobile,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), member.MemberSerial)
	require.Equal(t, "rahim uddin", member.Name)
	require.Equal(t, 10, member.DiscountValue)
	require.Zero(t, member.TotalSpent)
	require.Zero(t, member.TotalDiscount)
	require.Empty(t, member.InvoicesCode)

	second, err := svc.Create(context.Background(), models.CreateMemberRequest{
		Name:   "karim",
		Mobile: "01812345678",
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), second.MemberSerial)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()

	cases := []struct {
		name   string
		req    models.CreateMemberRequest
		reason string
	}{
		{"short name", models.CreateMemberRequest{Name: "ab", Mobile: validMobile}, "short name"},
		{"name starts with digit", models.CreateMemberRequest{Name: "1rahim", Mobile: validMobile}, "digit-leading name"},
		{"name starts with special", models.CreateMemberRequest{Name: "@rahim", Mobile: validMobile}, "special-leading name"},
		{"mobile too short", models.CreateMemberRequest{Name: "rahim", Mobile: "0171234567"}, "short mobile"},
		{"mobile bad prefix", models.CreateMemberRequest{Name: "rahim", Mobile: "02712345678"}, "bad prefix"},
		{"mobile bad operator", models.CreateMemberRequest{Name: "rahim", Mobile: "01212345678"}, "bad operator digit"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			require.Error(t, err)
			require.Equal(t, apperr.KindValidation, apperr.KindOf(err), tc.reason)
		})
	}
}

func TestCreateDuplicateMobile(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), models.CreateMemberRequest{Name: "rahim", Mobile: validMobile})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), models.CreateMemberRequest{Name: "karim", Mobile: validMobile})
	require.Error(t, err)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestApplyInvoiceLedgerConsistency(t *testing.T) {
	svc, store := newTestService()

	_, err := svc.Create(context.Background(), models.CreateMemberRequest{Name: "rahim", Mobile: validMobile})
	require.NoError(t, err)

	deltas := []struct {
		discount float64
		spend    float64
	}{
		{10, 100},
		{0, 50},
		{25.5, 255},
	}

	var wantDiscount, wantSpend float64
	var refs []primitive.ObjectID
	for _, d := range deltas {
		ref := primitive.NewObjectID()
		refs = append(refs, ref)
		_, err := svc.ApplyInvoice(context.Background(), validMobile, d.discount, d.spend, ref)
		require.NoError(t, err)
		wantDiscount += d.discount
		wantSpend += d.spend
	}

	member, err := store.FindMemberByMobile(context.Background(), validMobile)
	require.NoError(t, err)
	require.Equal(t, wantDiscount, member.TotalDiscount)
	require.Equal(t, wantSpend, member.TotalSpent)
	require.Equal(t, refs, member.InvoicesCode)
}

func TestApplyInvoiceConcurrentNoLostUpdate(t *testing.T) {
	svc, store := newTestService()

	_, err := svc.Create(context.Background(), models.CreateMemberRequest{Name: "rahim", Mobile: validMobile})
	require.NoError(t, err)

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.ApplyInvoice(context.Background(), validMobile, 10, 100, primitive.NewObjectID())
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	member, err := store.FindMemberByMobile(context.Background(), validMobile)
	require.NoError(t, err)
	require.Equal(t, float64(workers*10), member.TotalDiscount)
	require.Equal(t, float64(workers*100), member.TotalSpent)
	require.Len(t, member.InvoicesCode, workers)
}

func TestApplyInvoiceValidation(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), models.CreateMemberRequest{Name: "rahim", Mobile: validMobile})
	require.NoError(t, err)

	_, err = svc.ApplyInvoice(context.Background(), validMobile, -1, 100, primitive.NewObjectID())
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.ApplyInvoice(context.Background(), validMobile, 1, -100, primitive.NewObjectID())
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.ApplyInvoice(context.Background(), validMobile, 1, 100, primitive.NilObjectID)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.ApplyInvoice(context.Background(), "01999999999", 1, 100, primitive.NewObjectID())
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestEditInformation(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), models.CreateMemberRequest{Name: "rahim", Mobile: validMobile})
	require.NoError(t, err)

	newName := "Rahim  Mia"
	discount := 15
	member, err := svc.EditInformation(context.Background(), validMobile, models.EditMemberRequest{
		Name:          &newName,
		DiscountValue: &discount,
	})
	require.NoError(t, err)
	require.Equal(t, "rahim mia", member.Name)
	require.Equal(t, 15, member.DiscountValue)
	// The natural key never changes.
	require.Equal(t, validMobile, member.Mobile)

	_, err = svc.EditInformation(context.Background(), validMobile, models.EditMemberRequest{})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	tooBig := 150
	_, err = svc.EditInformation(context.Background(), validMobile, models.EditMemberRequest{DiscountValue: &tooBig})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestDeleteMember(t *testing.T) {
	svc, store := newTestService()

	_, err := svc.Create(context.Background(), models.CreateMemberRequest{Name: "rahim", Mobile: validMobile})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), validMobile))

	_, err = store.FindMemberByMobile(context.Background(), validMobile)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = svc.Delete(context.Background(), validMobile)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
