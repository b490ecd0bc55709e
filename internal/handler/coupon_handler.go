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
	"github.com/mikekiroz/maikitto-saas/pkg/database"
	"github.com/mikekiroz/maikitto-saas/pkg/logger"
	"github.com/mikekiroz/maikitto-saas/prometheus"
	"go.uber.org/zap"
)

// CouponRequest defines the structure for coupon creation/update
// requests. Optional numerics arrive as pointers so absent and zero are
// distinguishable.
type CouponRequest struct {
	Code           string     `json:"code"`
	Description    string     `json:"description"`
	DiscountType   string     `json:"discount_type"`
	DiscountValue  int64      `json:"discount_value"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	MaxRedemptions *int       `json:"max_redemptions"`
	MinCartAmount  int64      `json:"min_cart_amount"`
	Scope          string     `json:"scope"`
	Active         bool       `json:"active"`
	ProductIDs     []uint     `json:"product_ids"`
}

func (r *CouponRequest) validate() error {
	if model.NormalizeCouponCode(r.Code) == "" {
		return apperr.New(apperr.KindValidation, "coupon code is required")
	}
	if !model.ValidDiscountType(r.DiscountType) {
		return apperr.Newf(apperr.KindValidation, "unknown discount type %q", r.DiscountType)
	}
	if r.DiscountValue <= 0 {
		return apperr.New(apperr.KindValidation, "discount value must be positive")
	}
	if r.Scope == "" {
		r.Scope = model.ScopeWholeCart
	}
	if !model.ValidCouponScope(r.Scope) {
		return apperr.Newf(apperr.KindValidation, "unknown coupon scope %q", r.Scope)
	}
	if r.MinCartAmount < 0 {
		return apperr.New(apperr.KindValidation, "minimum cart amount cannot be negative")
	}
	if r.MaxRedemptions != nil && *r.MaxRedemptions <= 0 {
		return apperr.New(apperr.KindValidation, "max redemptions must be positive")
	}
	return nil
}

// couponView decorates a coupon with its derived status and linked
// product ids.
type couponView struct {
	model.Coupon
	Status     coupon.Status `json:"status"`
	ProductIDs []uint        `json:"product_ids,omitempty"`
}

// ListCoupons handles retrieving the tenant's coupons with derived status
func ListCoupons(c echo.Context) error {
	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}
	prometheus.RecordCouponOperation("list")

	coupons, err := store.NewCouponStore(database.GetDB()).List(c.Request().Context(), tc)
	if err != nil {
		return fail(c, err)
	}

	now := time.Now()
	views := make([]couponView, 0, len(coupons))
	for _, cpn := range coupons {
		views = append(views, couponView{Coupon: cpn, Status: coupon.StatusOf(cpn, now)})
	}
	return c.JSON(http.StatusOK, views)
}

// GetCoupon handles retrieving one coupon with its linked product ids
func GetCoupon(c echo.Context) error {
	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}
	prometheus.RecordCouponOperation("get")

	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, err)
	}

	coupons := store.NewCouponStore(database.GetDB())
	cpn, err := coupons.Get(c.Request().Context(), tc, id)
	if err != nil {
		return fail(c, err)
	}
	linked, err := coupons.LinkedProductIDs(c.Request().Context(), cpn.ID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, couponView{
		Coupon:     *cpn,
		Status:     coupon.StatusOf(*cpn, time.Now()),
		ProductIDs: linked,
	})
}

// CreateCoupon handles creating a new coupon
func CreateCoupon(c echo.Context) error {
	return upsertCoupon(c, 0)
}

// UpdateCoupon handles updating an existing coupon
func UpdateCoupon(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	return upsertCoupon(c, id)
}

func upsertCoupon(c echo.Context, id uint) error {
	log := logger.FromEcho(c)

	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}
	prometheus.RecordCouponOperation("upsert")

	var req CouponRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := req.validate(); err != nil {
		return fail(c, err)
	}

	cpn := model.Coupon{
		ID:             id,
		Code:           req.Code,
		Description:    req.Description,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		MaxRedemptions: req.MaxRedemptions,
		MinCartAmount:  req.MinCartAmount,
		Scope:          req.Scope,
		Active:         req.Active,
	}

	coupons := store.NewCouponStore(database.GetDB())
	if err := coupons.Upsert(c.Request().Context(), tc, &cpn, req.ProductIDs); err != nil {
		return fail(c, err)
	}
	linked, err := coupons.LinkedProductIDs(c.Request().Context(), cpn.ID)
	if err != nil {
		return fail(c, err)
	}

	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	log.Info("Coupon saved",
		zap.Uint("coupon_id", cpn.ID),
		zap.String("code", cpn.Code),
		zap.String("scope", cpn.Scope))
	return c.JSON(status, couponView{
		Coupon:     cpn,
		Status:     coupon.StatusOf(cpn, time.Now()),
		ProductIDs: linked,
	})
}

// DeleteCoupon handles deleting a coupon and its product links
func DeleteCoupon(c echo.Context) error {
	log := logger.FromEcho(c)

	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}
	prometheus.RecordCouponOperation("delete")

	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, err)
	}

	if err := store.NewCouponStore(database.GetDB()).Delete(c.Request().Context(), tc, id); err != nil {
		return fail(c, err)
	}

	log.Info("Coupon deleted", zap.Uint("coupon_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "coupon deleted"})
}

// EvaluateCouponRequest is a redemption-time eligibility check payload
type EvaluateCouponRequest struct {
	Code string            `json:"code"`
	Cart []coupon.CartLine `json:"cart"`
}

// EvaluateCoupon runs the same applicability rules used at order
// placement against an arbitrary cart, without touching the redemption
// counter.
func EvaluateCoupon(c echo.Context) error {
	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}
	prometheus.RecordCouponOperation("evaluate")

	var req EvaluateCouponRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Code == "" {
		return fail(c, apperr.New(apperr.KindValidation, "coupon code is required"))
	}

	coupons := store.NewCouponStore(database.GetDB())
	cpn, err := coupons.GetByCode(c.Request().Context(), tc, req.Code)
	if err != nil {
		return fail(c, err)
	}
	linked, err := coupons.LinkedProductIDs(c.Request().Context(), cpn.ID)
	if err != nil {
		return fail(c, err)
	}

	result := coupon.Evaluate(*cpn, linked, req.Cart, time.Now())
	if result.Eligible {
		prometheus.RecordCouponEvaluation("eligible")
	} else {
		prometheus.RecordCouponEvaluation("ineligible")
	}
	return c.JSON(http.StatusOK, result)
}
