package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mikekiroz/maikitto-saas/internal/apperr"
	"github.com/mikekiroz/maikitto-saas/internal/coupon"
	mid "github.com/mikekiroz/maikitto-saas/internal/middleware"
	"github.com/mikekiroz/maikitto-saas/internal/model"
	"github.com/mikekiroz/maikitto-saas/internal/store"
	"github.com/mikekiroz/maikitto-saas/internal/tenant"
	"github.com/mikekiroz/maikitto-saas/pkg/database"
	"github.com/mikekiroz/maikitto-saas/pkg/logger"
	"github.com/mikekiroz/maikitto-saas/prometheus"
	"go.uber.org/zap"
)

const orderDateLayout = "2006-01-02"

// orderFilterFromQuery parses the list filters: inclusive date bounds on
// placed_at plus a customer-name substring.
func orderFilterFromQuery(c echo.Context, loc *time.Location) (store.OrderFilter, error) {
	var filter store.OrderFilter

	if raw := c.QueryParam("from"); raw != "" {
		t, err := time.ParseInLocation(orderDateLayout, raw, loc)
		if err != nil {
			return filter, apperr.New(apperr.KindValidation, "invalid from date, expected YYYY-MM-DD")
		}
		filter.From = &t
	}
	if raw := c.QueryParam("to"); raw != "" {
		t, err := time.ParseInLocation(orderDateLayout, raw, loc)
		if err != nil {
			return filter, apperr.New(apperr.KindValidation, "invalid to date, expected YYYY-MM-DD")
		}
		// Inclusive upper bound: extend to the end of the day.
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.To = &end
	}
	filter.Customer = c.QueryParam("customer")
	return filter, nil
}

// ListOrders handles retrieving the tenant's orders with optional filters
func ListOrders(c echo.Context) error {
	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}

	filter, err := orderFilterFromQuery(c, serverLocation())
	if err != nil {
		return fail(c, err)
	}

	orders, err := store.NewOrderLedger(database.GetDB()).List(c.Request().Context(), tc, filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrder handles retrieving a single order by ID
func GetOrder(c echo.Context) error {
	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, err)
	}

	order, err := store.NewOrderLedger(database.GetDB()).Get(c.Request().Context(), tc, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// OrderRequest is the payload the ordering channel submits
type OrderRequest struct {
	CustomerName string          `json:"customer_name"`
	Items        model.CartItems `json:"items"`
	Total        int64           `json:"total"`
	PlacedAt     *time.Time      `json:"placed_at"`
	CouponCode   string          `json:"coupon_code"`
}

// IngestOrder appends an order from the ordering channel. When the
// payload names a coupon, the coupon is evaluated against the cart and a
// successful application both reduces the stored total and records one
// redemption. This is the only place the redemption counter moves.
func IngestOrder(c echo.Context) error {
	log := logger.FromEcho(c)

	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}

	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if len(req.Items) == 0 {
		return fail(c, apperr.New(apperr.KindValidation, "order needs at least one item"))
	}
	if req.Total < 0 {
		return fail(c, apperr.New(apperr.KindValidation, "order total cannot be negative"))
	}

	order := model.Order{
		CustomerName: req.CustomerName,
		Items:        req.Items,
		Total:        req.Total,
		Status:       model.OrderStatusPending,
	}
	if req.PlacedAt != nil {
		order.PlacedAt = *req.PlacedAt
	}

	var applied *coupon.Result
	var couponID uint
	if req.CouponCode != "" {
		result, id, err := applyCoupon(c, tc, req)
		if err != nil {
			return fail(c, err)
		}
		applied = &result
		couponID = id
		if result.Eligible {
			order.Total -= result.Discount
			if order.Total < 0 {
				order.Total = 0
			}
		}
	}

	// The redemption only counts once the order row exists, so the
	// counter moves in the same transaction as the insert.
	redeemID := uint(0)
	if applied != nil && applied.Eligible {
		redeemID = couponID
	}
	ledger := store.NewOrderLedger(database.GetDB())
	if err := ledger.CreateRedeeming(c.Request().Context(), tc, &order, redeemID); err != nil {
		return fail(c, err)
	}
	if applied != nil && applied.Eligible {
		prometheus.CouponRedemptionsCounter.Inc()
	}
	prometheus.OrderIngestCounter.Inc()

	log.Info("Order ingested",
		zap.Uint("order_id", order.ID),
		zap.Int64("total", order.Total),
		zap.Int("items", len(order.Items)))

	response := echo.Map{"order": order}
	if applied != nil {
		response["coupon"] = applied
	}
	return c.JSON(http.StatusCreated, response)
}

// applyCoupon evaluates the named coupon against the order's cart lines.
func applyCoupon(c echo.Context, tc tenant.Context, req OrderRequest) (coupon.Result, uint, error) {
	coupons := store.NewCouponStore(database.GetDB())

	cpn, err := coupons.GetByCode(c.Request().Context(), tc, req.CouponCode)
	if err != nil {
		return coupon.Result{}, 0, err
	}
	linked, err := coupons.LinkedProductIDs(c.Request().Context(), cpn.ID)
	if err != nil {
		return coupon.Result{}, 0, err
	}

	cart := make([]coupon.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		cart = append(cart, coupon.CartLine{
			ProductID: item.ProductID,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Count(),
		})
	}

	result := coupon.Evaluate(*cpn, linked, cart, time.Now())
	if result.Eligible {
		prometheus.RecordCouponEvaluation("eligible")
	} else {
		prometheus.RecordCouponEvaluation("ineligible")
	}
	return result, cpn.ID, nil
}

// UpdateOrderStatus moves an order between pending, confirmed and cancelled
func UpdateOrderStatus(c echo.Context) error {
	log := logger.FromEcho(c)

	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, err)
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if !model.ValidOrderStatus(req.Status) {
		return fail(c, apperr.Newf(apperr.KindValidation, "unknown order status %q", req.Status))
	}

	order, err := store.NewOrderLedger(database.GetDB()).UpdateStatus(c.Request().Context(), tc, id, req.Status)
	if err != nil {
		return fail(c, err)
	}
	prometheus.OrderStatusCounter.WithLabelValues(req.Status).Inc()

	log.Info("Order status updated",
		zap.Uint("order_id", id),
		zap.String("status", req.Status))
	return c.JSON(http.StatusOK, order)
}
