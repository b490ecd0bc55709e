package store

import (
	"context"
	"time"

	"github.com/mikekiroz/maikitto-saas/internal/model"
	"github.com/mikekiroz/maikitto-saas/internal/tenant"
	"gorm.io/gorm"
)

// RatingStore persists customer reviews.
type RatingStore struct {
	db *gorm.DB
}

// NewRatingStore creates a rating store around the database handle.
func NewRatingStore(db *gorm.DB) *RatingStore {
	return &RatingStore{db: db}
}

// List returns the tenant's ratings, newest first.
func (s *RatingStore) List(ctx context.Context, tc tenant.Context) ([]model.Rating, error) {
	var ratings []model.Rating
	err := tenant.Scoped(s.db.WithContext(ctx), tc).
		Order("rated_at desc").
		Find(&ratings).Error
	if err != nil {
		return nil, wrapDB(err, "listing ratings")
	}
	return ratings, nil
}

// Create appends a rating for the tenant.
func (s *RatingStore) Create(ctx context.Context, tc tenant.Context, rating *model.Rating) error {
	rating.TenantID = tc.TenantID
	if rating.RatedAt.IsZero() {
		rating.RatedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(rating).Error; err != nil {
		return wrapDB(err, "creating rating")
	}
	return nil
}
