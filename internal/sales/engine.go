// Package sales turns a tenant's raw order stream into bucketed revenue
// series and product rankings. All functions are pure: they take loaded
// orders and return derived views, with no database or clock access
// beyond the arguments.
package sales

import (
	"sort"
	"time"

	"github.com/mikekiroz/maikitto-saas/internal/model"
)

// TrendDays is the length of the recent-trend window shown on the
// dashboard: the 7 most recent calendar days including today.
const TrendDays = 7

// TopProductsLimit caps the product ranking shown on the dashboard.
const TopProductsLimit = 5

// dayLabel formats a bucket's calendar day, e.g. "02 Jan".
const dayLabel = "02 Jan"

// dayKey is the year-inclusive bucket index key. Labels repeat across
// years, so indexing by label would merge same-day-month orders from
// different years into one bucket.
const dayKey = "2006-01-02"

// Bucket is one calendar-day slot of the revenue series.
type Bucket struct {
	Label string `json:"label"`
	Total int64  `json:"total"`
}

// ProductCount is one row of the top-products ranking.
type ProductCount struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Summary holds the scalar totals over the filtered order set.
type Summary struct {
	Revenue int64 `json:"revenue"`
	Orders  int   `json:"orders"`
}

// TrendSeries builds the recent-trend revenue series: exactly TrendDays
// buckets ending on now's calendar day in loc, oldest first, every bucket
// starting at zero. Orders outside the generated window are ignored.
func TrendSeries(orders []model.Order, now time.Time, loc *time.Location) []Bucket {
	series := make([]Bucket, 0, TrendDays)
	index := make(map[string]int, TrendDays)

	today := now.In(loc)
	for i := TrendDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		index[day.Format(dayKey)] = len(series)
		series = append(series, Bucket{Label: day.Format(dayLabel)})
	}

	for _, order := range orders {
		if i, ok := index[order.PlacedAt.In(loc).Format(dayKey)]; ok {
			series[i].Total += order.Total
		}
	}
	return series
}

// RangeSeries buckets revenue per calendar day across an inclusive
// [from, to] window. A nil bound is derived from the earliest or latest
// order; an empty order set with an open bound yields an empty series.
func RangeSeries(orders []model.Order, from, to *time.Time, loc *time.Location) []Bucket {
	start, end, ok := rangeBounds(orders, from, to, loc)
	if !ok {
		return []Bucket{}
	}

	series := make([]Bucket, 0)
	index := make(map[string]int)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		index[day.Format(dayKey)] = len(series)
		series = append(series, Bucket{Label: day.Format(dayLabel)})
	}

	for _, order := range orders {
		if i, ok := index[order.PlacedAt.In(loc).Format(dayKey)]; ok {
			series[i].Total += order.Total
		}
	}
	return series
}

// rangeBounds resolves the series window to midnight-aligned days in loc.
func rangeBounds(orders []model.Order, from, to *time.Time, loc *time.Location) (time.Time, time.Time, bool) {
	var start, end time.Time

	if from != nil {
		start = dayOf(*from, loc)
	}
	if to != nil {
		end = dayOf(*to, loc)
	}

	if from == nil || to == nil {
		if len(orders) == 0 {
			return time.Time{}, time.Time{}, false
		}
		earliest, latest := orders[0].PlacedAt, orders[0].PlacedAt
		for _, order := range orders[1:] {
			if order.PlacedAt.Before(earliest) {
				earliest = order.PlacedAt
			}
			if order.PlacedAt.After(latest) {
				latest = order.PlacedAt
			}
		}
		if from == nil {
			start = dayOf(earliest, loc)
		}
		if to == nil {
			end = dayOf(latest, loc)
		}
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// TopProducts flattens every order's cart items and ranks item names by
// summed quantity, descending. Quantity defaults to 1 when absent and the
// name falls back to the legacy product field, then "Unknown". Ties keep
// first-encountered insertion order; the result is truncated to n.
func TopProducts(orders []model.Order, n int) []ProductCount {
	ranking := make([]ProductCount, 0)
	index := make(map[string]int)

	for _, order := range orders {
		for _, item := range order.Items {
			name := item.DisplayName()
			if i, ok := index[name]; ok {
				ranking[i].Quantity += item.Count()
				continue
			}
			index[name] = len(ranking)
			ranking = append(ranking, ProductCount{Name: name, Quantity: item.Count()})
		}
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Quantity > ranking[j].Quantity
	})

	if n >= 0 && len(ranking) > n {
		ranking = ranking[:n]
	}
	return ranking
}

// Summarize computes the scalar totals over the filtered order set. An
// empty set yields zeros, not an error.
func Summarize(orders []model.Order) Summary {
	var summary Summary
	for _, order := range orders {
		summary.Revenue += order.Total
	}
	summary.Orders = len(orders)
	return summary
}
