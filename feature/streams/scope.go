package streams

import (
	"context"
	"fmt"

	"stream-manager/feature/streams/models"

	"gorm.io/gorm"
)

// Scope resolves which user/provider pairs a fixup run covers.
type Scope interface {
	Resolve(ctx context.Context, userID, providerID uint64) ([]models.Target, error)
}

// GormScope resolves targets from the streams table.
type GormScope struct {
	db *gorm.DB
}

// NewScope creates a target resolver backed by db.
func NewScope(db *gorm.DB) *GormScope {
	return &GormScope{db: db}
}

// Resolve returns the targets for a run. An explicit user id yields a
// single target for that user, whether or not it owns any streams.
// Otherwise every user owning stream rows becomes a target; a non-zero
// provider id narrows the scan to users holding rows of that provider.
func (s *GormScope) Resolve(ctx context.Context, userID, providerID uint64) ([]models.Target, error) {
	if userID != 0 {
		return []models.Target{{UserID: userID, ProviderID: providerID}}, nil
	}

	q := s.db.WithContext(ctx).Model(&models.Stream{}).Distinct("user_id").Order("user_id")
	if providerID != 0 {
		q = q.Where("provider_id = ?", providerID)
	}

	var userIDs []uint64
	if err := q.Pluck("user_id", &userIDs).Error; err != nil {
		return nil, fmt.Errorf("resolve fixup targets: %w", err)
	}

	targets := make([]models.Target, 0, len(userIDs))
	for _, id := range userIDs {
		targets = append(targets, models.Target{UserID: id, ProviderID: providerID})
	}
	return targets, nil
}
