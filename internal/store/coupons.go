package store

import (
	"context"

	"github.com/mikekiroz/maikitto-saas/internal/apperr"
	"github.com/mikekiroz/maikitto-saas/internal/model"
	"github.com/mikekiroz/maikitto-saas/internal/tenant"
	"gorm.io/gorm"
)

// CouponStore persists coupon definitions and their product links.
type CouponStore struct {
	db *gorm.DB
}

// NewCouponStore creates a coupon store around the database handle.
func NewCouponStore(db *gorm.DB) *CouponStore {
	return &CouponStore{db: db}
}

// List returns the tenant's coupons, newest first.
func (s *CouponStore) List(ctx context.Context, tc tenant.Context) ([]model.Coupon, error) {
	var coupons []model.Coupon
	err := tenant.Scoped(s.db.WithContext(ctx), tc).Order("id desc").Find(&coupons).Error
	if err != nil {
		return nil, wrapDB(err, "listing coupons")
	}
	return coupons, nil
}

// Get loads one coupon owned by the tenant.
func (s *CouponStore) Get(ctx context.Context, tc tenant.Context, id uint) (*model.Coupon, error) {
	var coupon model.Coupon
	err := tenant.Scoped(s.db.WithContext(ctx), tc).First(&coupon, id).Error
	if err != nil {
		return nil, wrapDB(err, "loading coupon")
	}
	return &coupon, nil
}

// GetByCode loads one coupon by normalized code.
func (s *CouponStore) GetByCode(ctx context.Context, tc tenant.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := tenant.Scoped(s.db.WithContext(ctx), tc).
		Where("code = ?", model.NormalizeCouponCode(code)).
		First(&coupon).Error
	if err != nil {
		return nil, wrapDB(err, "loading coupon by code")
	}
	return &coupon, nil
}

// Upsert creates or updates a coupon and, when the scope is
// specific_products, replaces its full link set from productIDs inside
// the same transaction (delete-all-then-insert, not a diff). A whole-cart
// save leaves existing links in place; evaluation ignores them.
func (s *CouponStore) Upsert(ctx context.Context, tc tenant.Context, coupon *model.Coupon, productIDs []uint) error {
	coupon.TenantID = tc.TenantID
	coupon.Code = model.NormalizeCouponCode(coupon.Code)

	// Duplicate code check, excluding the coupon itself on update.
	var count int64
	dupQuery := tenant.Scoped(s.db.WithContext(ctx), tc).
		Model(&model.Coupon{}).
		Where("code = ?", coupon.Code)
	if coupon.ID != 0 {
		dupQuery = dupQuery.Where("id != ?", coupon.ID)
	}
	if err := dupQuery.Count(&count).Error; err != nil {
		return wrapDB(err, "checking coupon code uniqueness")
	}
	if count > 0 {
		return apperr.Newf(apperr.KindConflict, "coupon code %q already exists", coupon.Code)
	}

	if coupon.ID != 0 {
		// Updates may only touch coupons the tenant owns; preserve the
		// redemption counter, which only order placement increments.
		existing, err := s.Get(ctx, tc, coupon.ID)
		if err != nil {
			return err
		}
		coupon.Redemptions = existing.Redemptions
		coupon.CreatedAt = existing.CreatedAt
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(coupon).Error; err != nil {
			return wrapDB(err, "saving coupon")
		}
		if coupon.Scope != model.ScopeSpecificProducts {
			return nil
		}
		if err := tx.Where("coupon_id = ?", coupon.ID).Delete(&model.CouponProductLink{}).Error; err != nil {
			return wrapDB(err, "clearing coupon product links")
		}
		for _, productID := range productIDs {
			link := model.CouponProductLink{CouponID: coupon.ID, ProductID: productID}
			if err := tx.Create(&link).Error; err != nil {
				return wrapDB(err, "linking coupon product")
			}
		}
		return nil
	})
}

// LinkedProductIDs returns the product ids linked to a coupon.
func (s *CouponStore) LinkedProductIDs(ctx context.Context, couponID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&model.CouponProductLink{}).
		Where("coupon_id = ?", couponID).
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, wrapDB(err, "loading coupon product links")
	}
	return ids, nil
}

// IncrementRedemptions records one successful redemption. Called by
// order placement, never by evaluation.
func (s *CouponStore) IncrementRedemptions(ctx context.Context, tc tenant.Context, couponID uint) error {
	result := tenant.Scoped(s.db.WithContext(ctx), tc).
		Model(&model.Coupon{}).
		Where("id = ?", couponID).
		UpdateColumn("redemptions", gorm.Expr("redemptions + 1"))
	if result.Error != nil {
		return wrapDB(result.Error, "incrementing coupon redemptions")
	}
	if result.RowsAffected == 0 {
		return wrapDB(gorm.ErrRecordNotFound, "incrementing coupon redemptions")
	}
	return nil
}

// Delete removes a coupon and its links.
func (s *CouponStore) Delete(ctx context.Context, tc tenant.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tenant.Scoped(tx, tc).Delete(&model.Coupon{}, id)
		if result.Error != nil {
			return wrapDB(result.Error, "deleting coupon")
		}
		if result.RowsAffected == 0 {
			return wrapDB(gorm.ErrRecordNotFound, "deleting coupon")
		}
		if err := tx.Where("coupon_id = ?", id).Delete(&model.CouponProductLink{}).Error; err != nil {
			return wrapDB(err, "deleting coupon product links")
		}
		return nil
	})
}
