package store

import (
	"context"
	"errors"

	"github.com/mikekiroz/maikitto-saas/internal/apperr"
	"github.com/mikekiroz/maikitto-saas/internal/model"
	"gorm.io/gorm"
)

// TenantStore reads and writes restaurant records. It is the only store
// whose lookups are scoped by user id instead of tenant id, because it
// answers the "does this user have a tenant yet" question.
type TenantStore struct {
	db *gorm.DB
}

// NewTenantStore creates a tenant store around the database handle.
func NewTenantStore(db *gorm.DB) *TenantStore {
	return &TenantStore{db: db}
}

// GetByOwner resolves the tenant owned by a user. NotFound means
// onboarding is still required.
func (s *TenantStore) GetByOwner(ctx context.Context, userID uint) (*model.Tenant, error) {
	var t model.Tenant
	if err := s.db.WithContext(ctx).Where("owner_id = ?", userID).First(&t).Error; err != nil {
		return nil, wrapDB(err, "loading restaurant for user")
	}
	return &t, nil
}

// Get loads a tenant by id.
func (s *TenantStore) Get(ctx context.Context, tenantID uint) (*model.Tenant, error) {
	var t model.Tenant
	if err := s.db.WithContext(ctx).First(&t, tenantID).Error; err != nil {
		return nil, wrapDB(err, "loading restaurant")
	}
	return &t, nil
}

// Create onboards a restaurant for a user. Each user gets exactly one;
// a second attempt is a conflict.
func (s *TenantStore) Create(ctx context.Context, t *model.Tenant) error {
	var existing model.Tenant
	err := s.db.WithContext(ctx).Where("owner_id = ?", t.OwnerID).First(&existing).Error
	if err == nil {
		return apperr.New(apperr.KindConflict, "restaurant already exists for this user")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return wrapDB(err, "checking existing restaurant")
	}

	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return wrapDB(err, "creating restaurant")
	}
	return nil
}

// Update persists settings changes for the tenant. The owner and id are
// never changed by settings updates.
func (s *TenantStore) Update(ctx context.Context, t *model.Tenant) error {
	if err := s.db.WithContext(ctx).Save(t).Error; err != nil {
		return wrapDB(err, "updating restaurant")
	}
	return nil
}
