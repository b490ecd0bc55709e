package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/mikekiroz/maikitto-saas/internal/apperr"
	mid "github.com/mikekiroz/maikitto-saas/internal/middleware"
	"github.com/mikekiroz/maikitto-saas/internal/model"
	"github.com/mikekiroz/maikitto-saas/internal/store"
	"github.com/mikekiroz/maikitto-saas/pkg/database"
	"github.com/mikekiroz/maikitto-saas/pkg/logger"
	"github.com/mikekiroz/maikitto-saas/prometheus"
	"go.uber.org/zap"
)

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
	Active      bool   `json:"active"`
}

func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.New(apperr.KindValidation, "invalid id")
	}
	return uint(id), nil
}

// ListCategories handles retrieving the tenant's categories
func ListCategories(c echo.Context) error {
	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}
	prometheus.RecordCatalogOperation("category", "list")

	categories, err := store.NewCatalogStore(database.GetDB()).ListCategories(c.Request().Context(), tc)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory handles creating a new category
func CreateCategory(c echo.Context) error {
	log := logger.FromEcho(c)

	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}
	prometheus.RecordCatalogOperation("category", "create")

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" {
		return fail(c, apperr.New(apperr.KindValidation, "category name is required"))
	}

	category := model.Category{
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		Active:      req.Active,
	}
	if err := store.NewCatalogStore(database.GetDB()).CreateCategory(c.Request().Context(), tc, &category); err != nil {
		return fail(c, err)
	}

	log.Info("Category created",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles updating an existing category
func UpdateCategory(c echo.Context) error {
	log := logger.FromEcho(c)

	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}
	prometheus.RecordCatalogOperation("category", "update")

	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, err)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" {
		return fail(c, apperr.New(apperr.KindValidation, "category name is required"))
	}

	catalog := store.NewCatalogStore(database.GetDB())
	category, err := catalog.GetCategory(c.Request().Context(), tc, id)
	if err != nil {
		return fail(c, err)
	}

	category.Name = req.Name
	category.Description = req.Description
	category.SortOrder = req.SortOrder
	category.Active = req.Active

	if err := catalog.UpdateCategory(c.Request().Context(), tc, category); err != nil {
		return fail(c, err)
	}

	log.Info("Category updated", zap.Uint("category_id", category.ID))
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles hard-deleting a category
func DeleteCategory(c echo.Context) error {
	log := logger.FromEcho(c)

	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}
	prometheus.RecordCatalogOperation("category", "delete")

	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, err)
	}

	if err := store.NewCatalogStore(database.GetDB()).DeleteCategory(c.Request().Context(), tc, id); err != nil {
		return fail(c, err)
	}

	log.Info("Category deleted", zap.Uint("category_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "category deleted"})
}
