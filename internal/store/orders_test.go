package store

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/mikekiroz/maikitto-saas/internal/model"
	"github.com/mikekiroz/maikitto-saas/internal/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB opens an in-memory database migrated with only the given
// models, pinned to a single connection so every query and transaction
// sees the same in-memory store.
func openTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models...))
	return db
}

func TestCreateRedeemingCountsOneRedemptionWithOrder(t *testing.T) {
	db := openTestDB(t, &model.Coupon{}, &model.CouponProductLink{}, &model.Order{})
	tc := tenant.Context{TenantID: 1}

	cpn := model.Coupon{
		TenantID:      1,
		Code:          "TACO10",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: 10,
		Active:        true,
	}
	require.NoError(t, db.Create(&cpn).Error)

	order := model.Order{
		CustomerName: "Ana",
		Items:        model.CartItems{{Name: "Taco", Quantity: 2, UnitPrice: 3500}},
		Total:        6300,
	}
	ledger := NewOrderLedger(db)
	require.NoError(t, ledger.CreateRedeeming(context.Background(), tc, &order, cpn.ID))

	var reloaded model.Coupon
	require.NoError(t, db.First(&reloaded, cpn.ID).Error)
	assert.Equal(t, 1, reloaded.Redemptions)

	assert.NotZero(t, order.ID)
	assert.Equal(t, uint(1), order.TenantID)
}

func TestCreateRedeemingRollsBackCounterWhenInsertFails(t *testing.T) {
	// No orders table: the insert inside the transaction must fail and
	// take the counter increment down with it.
	db := openTestDB(t, &model.Coupon{})
	tc := tenant.Context{TenantID: 1}

	cpn := model.Coupon{
		TenantID:      1,
		Code:          "TACO10",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: 10,
		Active:        true,
	}
	require.NoError(t, db.Create(&cpn).Error)

	order := model.Order{Total: 1000, Items: model.CartItems{{Name: "Taco"}}}
	err := NewOrderLedger(db).CreateRedeeming(context.Background(), tc, &order, cpn.ID)
	require.Error(t, err)

	var reloaded model.Coupon
	require.NoError(t, db.First(&reloaded, cpn.ID).Error)
	assert.Zero(t, reloaded.Redemptions)
}

func TestCreateRedeemingWithoutCouponOnlyInserts(t *testing.T) {
	db := openTestDB(t, &model.Coupon{}, &model.Order{})
	tc := tenant.Context{TenantID: 2}

	order := model.Order{Total: 5000, Items: model.CartItems{{Name: "Arepa"}}}
	require.NoError(t, NewOrderLedger(db).CreateRedeeming(context.Background(), tc, &order, 0))

	var count int64
	require.NoError(t, db.Model(&model.Coupon{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.NotZero(t, order.ID)
}

func TestIncrementRedemptionsIsTenantScoped(t *testing.T) {
	db := openTestDB(t, &model.Coupon{})

	cpn := model.Coupon{
		TenantID:      1,
		Code:          "TACO10",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: 10,
		Active:        true,
	}
	require.NoError(t, db.Create(&cpn).Error)

	err := NewCouponStore(db).IncrementRedemptions(context.Background(), tenant.Context{TenantID: 9}, cpn.ID)
	require.Error(t, err)

	var reloaded model.Coupon
	require.NoError(t, db.First(&reloaded, cpn.ID).Error)
	assert.Zero(t, reloaded.Redemptions)
}
