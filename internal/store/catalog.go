package store

import (
	"context"

	"github.com/mikekiroz/maikitto-saas/internal/model"
	"github.com/mikekiroz/maikitto-saas/internal/tenant"
	"gorm.io/gorm"
)

// CatalogStore reads and writes the tenant's categories and products.
type CatalogStore struct {
	db *gorm.DB
}

// NewCatalogStore creates a catalog store around the database handle.
func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// ListCategories returns the tenant's categories ordered for display.
func (s *CatalogStore) ListCategories(ctx context.Context, tc tenant.Context) ([]model.Category, error) {
	var categories []model.Category
	err := tenant.Scoped(s.db.WithContext(ctx), tc).
		Order("sort_order asc, id asc").
		Find(&categories).Error
	if err != nil {
		return nil, wrapDB(err, "listing categories")
	}
	return categories, nil
}

// GetCategory loads one category owned by the tenant.
func (s *CatalogStore) GetCategory(ctx context.Context, tc tenant.Context, id uint) (*model.Category, error) {
	var category model.Category
	err := tenant.Scoped(s.db.WithContext(ctx), tc).First(&category, id).Error
	if err != nil {
		return nil, wrapDB(err, "loading category")
	}
	return &category, nil
}

// CreateCategory inserts a category stamped with the tenant id.
func (s *CatalogStore) CreateCategory(ctx context.Context, tc tenant.Context, category *model.Category) error {
	category.TenantID = tc.TenantID
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return wrapDB(err, "creating category")
	}
	return nil
}

// UpdateCategory saves changes to a category after verifying ownership.
func (s *CatalogStore) UpdateCategory(ctx context.Context, tc tenant.Context, category *model.Category) error {
	if _, err := s.GetCategory(ctx, tc, category.ID); err != nil {
		return err
	}
	category.TenantID = tc.TenantID
	if err := s.db.WithContext(ctx).Save(category).Error; err != nil {
		return wrapDB(err, "updating category")
	}
	return nil
}

// DeleteCategory hard-deletes a category. Order history is unaffected
// because line items are plain text snapshots.
func (s *CatalogStore) DeleteCategory(ctx context.Context, tc tenant.Context, id uint) error {
	result := tenant.Scoped(s.db.WithContext(ctx), tc).Delete(&model.Category{}, id)
	if result.Error != nil {
		return wrapDB(result.Error, "deleting category")
	}
	if result.RowsAffected == 0 {
		return wrapDB(gorm.ErrRecordNotFound, "deleting category")
	}
	return nil
}

// CountCategories counts the tenant's categories.
func (s *CatalogStore) CountCategories(ctx context.Context, tc tenant.Context) (int64, error) {
	var count int64
	err := tenant.Scoped(s.db.WithContext(ctx), tc).Model(&model.Category{}).Count(&count).Error
	if err != nil {
		return 0, wrapDB(err, "counting categories")
	}
	return count, nil
}

// ListProducts returns the tenant's products, newest first.
func (s *CatalogStore) ListProducts(ctx context.Context, tc tenant.Context) ([]model.Product, error) {
	var products []model.Product
	err := tenant.Scoped(s.db.WithContext(ctx), tc).
		Order("id desc").
		Find(&products).Error
	if err != nil {
		return nil, wrapDB(err, "listing products")
	}
	return products, nil
}

// GetProduct loads one product owned by the tenant.
func (s *CatalogStore) GetProduct(ctx context.Context, tc tenant.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := tenant.Scoped(s.db.WithContext(ctx), tc).First(&product, id).Error
	if err != nil {
		return nil, wrapDB(err, "loading product")
	}
	return &product, nil
}

// CreateProduct inserts a product stamped with the tenant id. The
// category must belong to the same tenant.
func (s *CatalogStore) CreateProduct(ctx context.Context, tc tenant.Context, product *model.Product) error {
	if _, err := s.GetCategory(ctx, tc, product.CategoryID); err != nil {
		return err
	}
	product.TenantID = tc.TenantID
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return wrapDB(err, "creating product")
	}
	return nil
}

// UpdateProduct saves changes to a product after verifying ownership of
// both the product and its category.
func (s *CatalogStore) UpdateProduct(ctx context.Context, tc tenant.Context, product *model.Product) error {
	if _, err := s.GetProduct(ctx, tc, product.ID); err != nil {
		return err
	}
	if _, err := s.GetCategory(ctx, tc, product.CategoryID); err != nil {
		return err
	}
	product.TenantID = tc.TenantID
	if err := s.db.WithContext(ctx).Save(product).Error; err != nil {
		return wrapDB(err, "updating product")
	}
	return nil
}

// DeleteProduct hard-deletes a product and prunes any coupon links that
// reference it, so stale links never influence coupon evaluation.
func (s *CatalogStore) DeleteProduct(ctx context.Context, tc tenant.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tenant.Scoped(tx, tc).Delete(&model.Product{}, id)
		if result.Error != nil {
			return wrapDB(result.Error, "deleting product")
		}
		if result.RowsAffected == 0 {
			return wrapDB(gorm.ErrRecordNotFound, "deleting product")
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.CouponProductLink{}).Error; err != nil {
			return wrapDB(err, "pruning coupon links for deleted product")
		}
		return nil
	})
}

// CountProducts counts the tenant's products.
func (s *CatalogStore) CountProducts(ctx context.Context, tc tenant.Context) (int64, error) {
	var count int64
	err := tenant.Scoped(s.db.WithContext(ctx), tc).Model(&model.Product{}).Count(&count).Error
	if err != nil {
		return 0, wrapDB(err, "counting products")
	}
	return count, nil
}
