package mongodb

import (
	"context"
	"errors"
	"math"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/foodrepublic/pos-backend/internal/domain/models"
	"github.com/foodrepublic/pos-backend/pkg/apperr"
)

// InsertMember persists a new member and returns it with the assigned id.
func (s *Store) InsertMember(ctx context.Context, member models.Member) (*models.Member, error) {
	res, err := s.db.Collection(collMembers).InsertOne(ctx, member)
	if err != nil {
		return nil, storeErr("insert member", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		member.ID = oid
	}
	return &member, nil
}

// FindMemberByMobile returns the member keyed by the given mobile number.
func (s *Store) FindMemberByMobile(ctx context.Context, mobile string) (*models.Member, error) {
	var member models.Member
	err := s.db.Collection(collMembers).FindOne(ctx, bson.M{"mobile": mobile}).Decode(&member)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("member not found")
	}
	if err != nil {
		return nil, storeErr("find member by mobile", err)
	}
	return &member, nil
}

// ApplyMemberDelta increments the member's running ledger sums and appends
// the invoice reference, all in one document update. The single-document
// atomicity of FindOneAndUpdate is what serializes concurrent invoices for
// the same member; no read-modify-write cycle exists to lose.
func (s *Store) ApplyMemberDelta(ctx context.Context, mobile string, discountDelta, spendDelta float64, invoiceID primitive.ObjectID) (*models.Member, error) {
	update := bson.M{
		"$inc": bson.M{
			"total_discount": discountDelta,
			"total_spent":    spendDelta,
		},
		"$push": bson.M{"invoices_code": invoiceID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var member models.Member
	err := s.db.Collection(collMembers).FindOneAndUpdate(ctx, bson.M{"mobile": mobile}, update, opts).Decode(&member)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("member not found")
	}
	if err != nil {
		return nil, storeErr("apply member delta", err)
	}
	return &member, nil
}

// UpdateMemberInfo patches the non-financial member fields. The mobile key
// is never part of the patch; the service enforces its immutability.
func (s *Store) UpdateMemberInfo(ctx context.Context, mobile string, name *string, discountValue *int) (*models.Member, error) {
	fields := bson.M{"updatedAt": time.Now().UTC()}
	if name != nil {
		fields["name"] = *name
	}
	if discountValue != nil {
		fields["discount_value"] = *discountValue
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var member models.Member
	err := s.db.Collection(collMembers).FindOneAndUpdate(ctx, bson.M{"mobile": mobile}, bson.M{"$set": fields}, opts).Decode(&member)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("member not found")
	}
	if err != nil {
		return nil, storeErr("update member fields", err)
	}
	return &member, nil
}

// DeleteMember removes the member document. Invoice references held by the
// member dangle afterwards; there is no cascading repair.
func (s *Store) DeleteMember(ctx context.Context, mobile string) error {
	res, err := s.db.Collection(collMembers).DeleteOne(ctx, bson.M{"mobile": mobile})
	if err != nil {
		return storeErr("delete member", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFoundf("member not found")
	}
	return nil
}

// ListMembers returns one name-sorted page of members whose name or mobile
// contains the search term, case-insensitively and unanchored.
func (s *Store) ListMembers(ctx context.Context, search string, page, limit int) (*models.MemberPage, error) {
	pattern := ".*" + regexp.QuoteMeta(search) + ".*"
	filter := bson.M{"$or": bson.A{
		bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}},
		bson.M{"mobile": bson.M{"$regex": pattern, "$options": "i"}},
	}}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64((page - 1) * limit))

	cursor, err := s.db.Collection(collMembers).Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("list members", err)
	}

	var members []models.Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, storeErr("decode members", err)
	}

	count, err := s.db.Collection(collMembers).CountDocuments(ctx, filter)
	if err != nil {
		return nil, storeErr("count members", err)
	}

	return &models.MemberPage{
		Members:    members,
		Pagination: buildPagination(count, page, limit),
	}, nil
}

func buildPagination(total int64, page, limit int) models.Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	p := models.Pagination{
		TotalPages:  totalPages,
		CurrentPage: page,
	}
	if prev := page - 1; prev > 0 {
		p.PreviousPage = &prev
	}
	if next := page + 1; next <= totalPages {
		p.NextPage = &next
	}
	return p
}
