package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type counterDoc struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// NextSequence atomically increments the named counter and returns the new
// value. One counter document per sequence name; the upserted $inc makes the
// returned values strictly increasing and duplicate-free across concurrent
// callers. A value consumed by a creation that later fails is never handed
// out again, so failed creations leave gaps rather than duplicates.
func (s *Store) NextSequence(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDoc
	err := s.db.Collection(collCounters).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, storeErr("next sequence "+name, err)
	}

	return doc.Seq, nil
}
