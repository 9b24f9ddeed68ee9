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

// InsertInvoice persists a new invoice and returns it with the assigned id.
func (s *Store) InsertInvoice(ctx context.Context, invoice models.Invoice) (*models.Invoice, error) {
	res, err := s.db.Collection(collInvoices).InsertOne(ctx, invoice)
	if err != nil {
		return nil, storeErr("insert invoice", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		invoice.ID = oid
	}
	return &invoice, nil
}

// FindInvoiceByID returns the invoice with the given store id.
func (s *Store) FindInvoiceByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.Collection(collInvoices).FindOne(ctx, bson.M{"_id": id}).Decode(&invoice)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("invoice not found")
	}
	if err != nil {
		return nil, storeErr("find invoice by id", err)
	}
	return &invoice, nil
}

// FindInvoiceBySerial returns the invoice carrying the given human-facing
// serial number.
func (s *Store) FindInvoiceBySerial(ctx context.Context, serial int64) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.Collection(collInvoices).FindOne(ctx, bson.M{"fr_id": serial}).Decode(&invoice)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("invoice not found")
	}
	if err != nil {
		return nil, storeErr("find invoice by serial", err)
	}
	return &invoice, nil
}

// ListInvoicesInRange returns invoices created inside [start, end), ordered
// by creation time ascending.
func (s *Store) ListInvoicesInRange(ctx context.Context, start, end time.Time) ([]models.Invoice, error) {
	filter := bson.M{"createdAt": bson.M{"$gte": start, "$lt": end}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := s.db.Collection(collInvoices).Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("list invoices in range", err)
	}

	var invoices []models.Invoice
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, storeErr("decode invoices in range", err)
	}
	return invoices, nil
}
