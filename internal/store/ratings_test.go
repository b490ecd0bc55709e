package store

import (
	"context"
	"testing"
	"time"

	"github.com/mikekiroz/maikitto-saas/internal/model"
	"github.com/mikekiroz/maikitto-saas/internal/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingListIsTenantScopedNewestFirst(t *testing.T) {
	db := openTestDB(t, &model.Rating{})
	ratings := NewRatingStore(db)
	ctx := context.Background()

	older := model.Rating{CustomerName: "Ana", Stars: 5, Comment: "Excelente",
		RatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	newer := model.Rating{CustomerName: "Luis", Stars: 3,
		RatedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)}
	foreign := model.Rating{CustomerName: "Eve", Stars: 1,
		RatedAt: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)}

	require.NoError(t, ratings.Create(ctx, tenant.Context{TenantID: 1}, &older))
	require.NoError(t, ratings.Create(ctx, tenant.Context{TenantID: 1}, &newer))
	require.NoError(t, ratings.Create(ctx, tenant.Context{TenantID: 2}, &foreign))

	listed, err := ratings.List(ctx, tenant.Context{TenantID: 1})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Luis", listed[0].CustomerName)
	assert.Equal(t, "Ana", listed[1].CustomerName)
}

func TestRatingCreateDefaultsRatedAt(t *testing.T) {
	db := openTestDB(t, &model.Rating{})

	rating := model.Rating{CustomerName: "Ana", Stars: 4}
	require.NoError(t, NewRatingStore(db).Create(context.Background(), tenant.Context{TenantID: 1}, &rating))

	assert.False(t, rating.RatedAt.IsZero())
	assert.Equal(t, uint(1), rating.TenantID)
}
