package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	mid "github.com/mikekiroz/maikitto-saas/internal/middleware"
	"github.com/mikekiroz/maikitto-saas/internal/sales"
	"github.com/mikekiroz/maikitto-saas/internal/store"
	"github.com/mikekiroz/maikitto-saas/pkg/database"
)

// GetSales returns the revenue analysis for an optional date range: a
// per-day series plus scalar totals computed over the same filtered set.
func GetSales(c echo.Context) error {
	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}

	loc := serverLocation()
	filter, err := orderFilterFromQuery(c, loc)
	if err != nil {
		return fail(c, err)
	}

	orders, err := store.NewOrderLedger(database.GetDB()).List(c.Request().Context(), tc, filter)
	if err != nil {
		return fail(c, err)
	}

	series := sales.RangeSeries(orders, filter.From, filter.To, loc)
	summary := sales.Summarize(orders)

	return c.JSON(http.StatusOK, echo.Map{
		"series":  series,
		"summary": summary,
	})
}

// GetDashboard returns the business overview: the 7-day revenue trend,
// the top-5 product ranking, scalar totals and catalog counts.
func GetDashboard(c echo.Context) error {
	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}

	ctx := c.Request().Context()
	loc := serverLocation()

	orders, err := store.NewOrderLedger(database.GetDB()).List(ctx, tc, store.OrderFilter{})
	if err != nil {
		return fail(c, err)
	}

	catalog := store.NewCatalogStore(database.GetDB())
	productCount, err := catalog.CountProducts(ctx, tc)
	if err != nil {
		return fail(c, err)
	}
	categoryCount, err := catalog.CountCategories(ctx, tc)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"trend":        sales.TrendSeries(orders, time.Now(), loc),
		"top_products": sales.TopProducts(orders, sales.TopProductsLimit),
		"summary":      sales.Summarize(orders),
		"products":     productCount,
		"categories":   categoryCount,
	})
}
