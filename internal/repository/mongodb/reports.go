package mongodb

import (
	"context"

	"github.com/foodrepublic/pos-backend/internal/domain/models"
)

// SaveDailyReport persists a close-of-day snapshot.
func (s *Store) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	if _, err := s.db.Collection(collDailyReports).InsertOne(ctx, report); err != nil {
		return storeErr("insert daily report", err)
	}
	return nil
}
