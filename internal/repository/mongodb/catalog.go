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

// InsertStaff persists a new staff record.
func (s *Store) InsertStaff(ctx context.Context, staff models.Staff) (*models.Staff, error) {
	res, err := s.db.Collection(collStaffs).InsertOne(ctx, staff)
	if err != nil {
		return nil, storeErr("insert staff", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		staff.ID = oid
	}
	return &staff, nil
}

// FindStaffByName returns the staff record with the given normalized name.
func (s *Store) FindStaffByName(ctx context.Context, name string) (*models.Staff, error) {
	var staff models.Staff
	err := s.db.Collection(collStaffs).FindOne(ctx, bson.M{"name": name}).Decode(&staff)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("staff not found")
	}
	if err != nil {
		return nil, storeErr("find staff by name", err)
	}
	return &staff, nil
}

// FindStaffByID returns the staff record with the given store id.
func (s *Store) FindStaffByID(ctx context.Context, id primitive.ObjectID) (*models.Staff, error) {
	var staff models.Staff
	err := s.db.Collection(collStaffs).FindOne(ctx, bson.M{"_id": id}).Decode(&staff)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("staff not found")
	}
	if err != nil {
		return nil, storeErr("find staff by id", err)
	}
	return &staff, nil
}

// ListStaff returns all staff, name ascending.
func (s *Store) ListStaff(ctx context.Context) ([]models.Staff, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.db.Collection(collStaffs).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeErr("list staff", err)
	}

	var staffs []models.Staff
	if err := cursor.All(ctx, &staffs); err != nil {
		return nil, storeErr("decode staff", err)
	}
	return staffs, nil
}

// DeleteStaff removes the staff record with the given id.
func (s *Store) DeleteStaff(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.db.Collection(collStaffs).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeErr("delete staff", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFoundf("staff not found")
	}
	return nil
}

// InsertTable persists a new table record.
func (s *Store) InsertTable(ctx context.Context, table models.Table) (*models.Table, error) {
	res, err := s.db.Collection(collTables).InsertOne(ctx, table)
	if err != nil {
		return nil, storeErr("insert table", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		table.ID = oid
	}
	return &table, nil
}

// FindTableByID returns the table with the given store id.
func (s *Store) FindTableByID(ctx context.Context, id primitive.ObjectID) (*models.Table, error) {
	var table models.Table
	err := s.db.Collection(collTables).FindOne(ctx, bson.M{"_id": id}).Decode(&table)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("table not found")
	}
	if err != nil {
		return nil, storeErr("find table by id", err)
	}
	return &table, nil
}

// FindTableByName returns the table with the given name.
func (s *Store) FindTableByName(ctx context.Context, name string) (*models.Table, error) {
	var table models.Table
	err := s.db.Collection(collTables).FindOne(ctx, bson.M{"name": name}).Decode(&table)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("table not found")
	}
	if err != nil {
		return nil, storeErr("find table by name", err)
	}
	return &table, nil
}

// ListTables returns all tables in creation order.
func (s *Store) ListTables(ctx context.Context) ([]models.Table, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.db.Collection(collTables).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeErr("list tables", err)
	}

	var tables []models.Table
	if err := cursor.All(ctx, &tables); err != nil {
		return nil, storeErr("decode tables", err)
	}
	return tables, nil
}

// RenameTable sets a new name on the table with the given id.
func (s *Store) RenameTable(ctx context.Context, id primitive.ObjectID, name string) (*models.Table, error) {
	update := bson.M{"$set": bson.M{"name": name, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var table models.Table
	err := s.db.Collection(collTables).FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&table)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("table not found")
	}
	if err != nil {
		return nil, storeErr("rename table", err)
	}
	return &table, nil
}

// DeleteTable removes the table with the given id.
func (s *Store) DeleteTable(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.db.Collection(collTables).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeErr("delete table", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFoundf("table not found")
	}
	return nil
}
