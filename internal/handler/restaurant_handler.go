package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	mid "github.com/mikekiroz/maikitto-saas/internal/middleware"
	"github.com/mikekiroz/maikitto-saas/internal/model"
	"github.com/mikekiroz/maikitto-saas/internal/store"
	"github.com/mikekiroz/maikitto-saas/pkg/database"
	"github.com/mikekiroz/maikitto-saas/pkg/jwtutil"
	"github.com/mikekiroz/maikitto-saas/pkg/logger"
	"go.uber.org/zap"
)

// RestaurantRequest defines the settings a tenant can change
type RestaurantRequest struct {
	Name             string  `json:"name"`
	ContactPhone     string  `json:"contact_phone"`
	Address          string  `json:"address"`
	City             string  `json:"city"`
	LogoURL          string  `json:"logo_url"`
	IsOpen           bool    `json:"is_open"`
	DeliveryRadiusKm float64 `json:"delivery_radius_km"`
	BaseDeliveryFee  int64   `json:"base_delivery_fee"`
}

// GetRestaurant returns the caller's restaurant, or 404 when onboarding
// has not happened yet.
func GetRestaurant(c echo.Context) error {
	userID, _, err := mid.SessionUser(c)
	if err != nil {
		return fail(c, err)
	}

	restaurant, err := store.NewTenantStore(database.GetDB()).GetByOwner(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, restaurant)
}

// CreateRestaurant onboards the caller's restaurant. Runs exactly once
// per user; a second attempt conflicts. The response carries a fresh
// token with the new tenant claims.
func CreateRestaurant(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, email, err := mid.SessionUser(c)
	if err != nil {
		return fail(c, err)
	}

	var req RestaurantRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse restaurant creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	restaurant := model.Tenant{
		Name:             req.Name,
		OwnerID:          userID,
		Email:            email,
		ContactPhone:     req.ContactPhone,
		Address:          req.Address,
		City:             req.City,
		LogoURL:          req.LogoURL,
		IsOpen:           true,
		DeliveryRadiusKm: req.DeliveryRadiusKm,
		BaseDeliveryFee:  req.BaseDeliveryFee,
	}
	if restaurant.DeliveryRadiusKm <= 0 {
		restaurant.DeliveryRadiusKm = 5
	}

	if err := store.NewTenantStore(database.GetDB()).Create(c.Request().Context(), &restaurant); err != nil {
		return fail(c, err)
	}

	tenantID := restaurant.ID
	token, err := jwtutil.GenerateTokenWithTenant(email, userID, &tenantID, restaurant.Name)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("Restaurant onboarded",
		zap.Uint("tenant_id", restaurant.ID),
		zap.String("name", restaurant.Name))
	return c.JSON(http.StatusCreated, echo.Map{
		"restaurant": restaurant,
		"token":      token,
	})
}

// UpdateRestaurant saves settings changes for the caller's restaurant
func UpdateRestaurant(c echo.Context) error {
	log := logger.FromEcho(c)

	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}

	var req RestaurantRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse restaurant update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	tenants := store.NewTenantStore(database.GetDB())
	restaurant, err := tenants.Get(c.Request().Context(), tc.TenantID)
	if err != nil {
		return fail(c, err)
	}

	restaurant.Name = req.Name
	restaurant.ContactPhone = req.ContactPhone
	restaurant.Address = req.Address
	restaurant.City = req.City
	restaurant.LogoURL = req.LogoURL
	restaurant.IsOpen = req.IsOpen
	restaurant.DeliveryRadiusKm = req.DeliveryRadiusKm
	restaurant.BaseDeliveryFee = req.BaseDeliveryFee

	if err := tenants.Update(c.Request().Context(), restaurant); err != nil {
		return fail(c, err)
	}

	log.Info("Restaurant settings updated", zap.Uint("tenant_id", tc.TenantID))
	return c.JSON(http.StatusOK, restaurant)
}
