package sales

import (
	"testing"
	"time"

	"github.com/mikekiroz/maikitto-saas/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func orderAt(placed time.Time, total int64) model.Order {
	return model.Order{Total: total, PlacedAt: placed}
}

func TestTrendSeriesHasExactlySevenBucketsOldestFirst(t *testing.T) {
	loc := mustLocation(t, "America/Bogota")
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, loc)

	series := TrendSeries(nil, now, loc)

	require.Len(t, series, TrendDays)
	assert.Equal(t, "04 Mar", series[0].Label)
	assert.Equal(t, "10 Mar", series[6].Label)
	for _, b := range series {
		assert.Zero(t, b.Total)
	}
}

func TestTrendSeriesSumMatchesInWindowOrders(t *testing.T) {
	loc := mustLocation(t, "America/Bogota")
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, loc)

	orders := []model.Order{
		orderAt(time.Date(2026, 3, 10, 9, 0, 0, 0, loc), 15000),
		orderAt(time.Date(2026, 3, 8, 20, 0, 0, 0, loc), 22000),
		orderAt(time.Date(2026, 3, 4, 0, 30, 0, 0, loc), 8000),
		// Outside the 7-day window, must be ignored.
		orderAt(time.Date(2026, 3, 3, 23, 59, 0, 0, loc), 99999),
	}

	series := TrendSeries(orders, now, loc)

	var sum int64
	for _, b := range series {
		sum += b.Total
	}
	assert.Equal(t, int64(15000+22000+8000), sum)
	assert.Equal(t, int64(8000), series[0].Total)  // 04 Mar
	assert.Equal(t, int64(22000), series[4].Total) // 08 Mar
	assert.Equal(t, int64(15000), series[6].Total) // today
}

func TestTrendSeriesBucketsByTenantLocalCalendar(t *testing.T) {
	loc := mustLocation(t, "America/Bogota")
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, loc)

	// 03:00 UTC on 10 Mar is still 22:00 on 09 Mar in Bogota.
	orders := []model.Order{
		orderAt(time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC), 5000),
	}

	series := TrendSeries(orders, now, loc)
	assert.Equal(t, int64(5000), series[5].Total) // 09 Mar bucket
	assert.Zero(t, series[6].Total)
}

func TestTrendSeriesIgnoresPriorYearSameDayMonth(t *testing.T) {
	loc := mustLocation(t, "America/Bogota")
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, loc)

	// Same day-month as a window bucket, but a year earlier.
	orders := []model.Order{
		orderAt(time.Date(2025, 3, 8, 10, 0, 0, 0, loc), 7777),
	}

	series := TrendSeries(orders, now, loc)
	for _, b := range series {
		assert.Zero(t, b.Total)
	}
}

func TestRangeSeriesSpansWindowWithZeroFilledDays(t *testing.T) {
	loc := mustLocation(t, "America/Bogota")
	from := time.Date(2026, 5, 1, 0, 0, 0, 0, loc)
	to := time.Date(2026, 5, 4, 0, 0, 0, 0, loc)

	orders := []model.Order{
		orderAt(time.Date(2026, 5, 1, 13, 0, 0, 0, loc), 10000),
		orderAt(time.Date(2026, 5, 4, 19, 0, 0, 0, loc), 30000),
	}

	series := RangeSeries(orders, &from, &to, loc)

	require.Len(t, series, 4)
	assert.Equal(t, []Bucket{
		{Label: "01 May", Total: 10000},
		{Label: "02 May", Total: 0},
		{Label: "03 May", Total: 0},
		{Label: "04 May", Total: 30000},
	}, series)
}

func TestRangeSeriesDerivesOpenBoundsFromOrders(t *testing.T) {
	loc := mustLocation(t, "America/Bogota")
	orders := []model.Order{
		orderAt(time.Date(2026, 5, 3, 13, 0, 0, 0, loc), 7000),
		orderAt(time.Date(2026, 5, 1, 9, 0, 0, 0, loc), 4000),
	}

	series := RangeSeries(orders, nil, nil, loc)

	require.Len(t, series, 3)
	assert.Equal(t, "01 May", series[0].Label)
	assert.Equal(t, "03 May", series[2].Label)
	assert.Equal(t, int64(4000), series[0].Total)
	assert.Equal(t, int64(7000), series[2].Total)
}

func TestRangeSeriesKeepsYearsApartOverLongWindows(t *testing.T) {
	loc := mustLocation(t, "America/Bogota")
	// A window longer than a year repeats day-month labels.
	orders := []model.Order{
		orderAt(time.Date(2025, 3, 8, 10, 0, 0, 0, loc), 4000),
		orderAt(time.Date(2026, 3, 8, 10, 0, 0, 0, loc), 6000),
	}

	series := RangeSeries(orders, nil, nil, loc)

	require.Len(t, series, 366)
	assert.Equal(t, int64(4000), series[0].Total)
	assert.Equal(t, int64(6000), series[len(series)-1].Total)

	var sum int64
	for _, b := range series {
		sum += b.Total
	}
	assert.Equal(t, int64(10000), sum)
}

func TestRangeSeriesEmptyOrdersYieldEmptySeries(t *testing.T) {
	loc := mustLocation(t, "America/Bogota")
	assert.Empty(t, RangeSeries(nil, nil, nil, loc))
}

func TestTopProductsTieBrokenByInsertionOrder(t *testing.T) {
	orders := []model.Order{
		{Items: model.CartItems{
			{Name: "Taco", Quantity: 3},
		}},
		{Items: model.CartItems{
			{Name: "Taco", Quantity: 2},
			{Name: "Soda", Quantity: 5},
		}},
	}

	ranking := TopProducts(orders, TopProductsLimit)

	require.Len(t, ranking, 2)
	// Taco and Soda both sum to 5; Taco was seen first.
	assert.Equal(t, ProductCount{Name: "Taco", Quantity: 5}, ranking[0])
	assert.Equal(t, ProductCount{Name: "Soda", Quantity: 5}, ranking[1])
}

func TestTopProductsNameFallbackAndDefaultQuantity(t *testing.T) {
	orders := []model.Order{
		{Items: model.CartItems{
			// Legacy field with default quantity, a nameless item, a merge
			// with the legacy entry, and an explicit zero quantity.
			{Product: "Arepa"},
			{},
			{Name: "Arepa", Quantity: 2},
			{Name: "Jugo", Quantity: 0},
		}},
	}

	ranking := TopProducts(orders, TopProductsLimit)

	require.Len(t, ranking, 3)
	assert.Equal(t, ProductCount{Name: "Arepa", Quantity: 3}, ranking[0])
	assert.Contains(t, ranking, ProductCount{Name: "Unknown", Quantity: 1})
	assert.Contains(t, ranking, ProductCount{Name: "Jugo", Quantity: 1})
}

func TestTopProductsTruncates(t *testing.T) {
	items := model.CartItems{}
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		items = append(items, model.CartItem{Name: name, Quantity: 1})
	}
	ranking := TopProducts([]model.Order{{Items: items}}, TopProductsLimit)
	assert.Len(t, ranking, TopProductsLimit)
}

func TestSummarize(t *testing.T) {
	orders := []model.Order{
		{Total: 12000},
		{Total: 8000},
		{Total: 500},
	}
	summary := Summarize(orders)
	assert.Equal(t, int64(20500), summary.Revenue)
	assert.Equal(t, 3, summary.Orders)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	assert.Zero(t, summary.Revenue)
	assert.Zero(t, summary.Orders)
}
