package handler

import (
	"net/http"

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

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	DiscountPrice *int64 `json:"discount_price"`
	CategoryID    uint   `json:"category_id"`
	Description   string `json:"description"`
	ImageURL      string `json:"image_url"`
	Active        bool   `json:"active"`
}

func (r *ProductRequest) validate() error {
	if r.Name == "" {
		return apperr.New(apperr.KindValidation, "product name is required")
	}
	if r.Price <= 0 {
		return apperr.New(apperr.KindValidation, "product price must be positive")
	}
	if r.CategoryID == 0 {
		return apperr.New(apperr.KindValidation, "category is required")
	}
	return nil
}

// productView decorates a product with its derived sale fields.
type productView struct {
	model.Product
	OnSale      bool `json:"on_sale"`
	SalePercent int  `json:"sale_percent"`
}

func viewOf(p model.Product) productView {
	return productView{Product: p, OnSale: p.OnSale(), SalePercent: p.SalePercent()}
}

// ListProducts handles retrieving the tenant's products
func ListProducts(c echo.Context) error {
	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}
	prometheus.RecordCatalogOperation("product", "list")

	products, err := store.NewCatalogStore(database.GetDB()).ListProducts(c.Request().Context(), tc)
	if err != nil {
		return fail(c, err)
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, viewOf(p))
	}
	return c.JSON(http.StatusOK, views)
}

// GetProduct handles retrieving a single product by ID
func GetProduct(c echo.Context) error {
	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}
	prometheus.RecordCatalogOperation("product", "get")

	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, err)
	}

	product, err := store.NewCatalogStore(database.GetDB()).GetProduct(c.Request().Context(), tc, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, viewOf(*product))
}

// CreateProduct handles creating a new product
func CreateProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}
	prometheus.RecordCatalogOperation("product", "create")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := req.validate(); err != nil {
		return fail(c, err)
	}

	product := model.Product{
		Name:          req.Name,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		CategoryID:    req.CategoryID,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Active:        req.Active,
	}
	if err := store.NewCatalogStore(database.GetDB()).CreateProduct(c.Request().Context(), tc, &product); err != nil {
		return fail(c, err)
	}

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int64("price", product.Price))
	return c.JSON(http.StatusCreated, viewOf(product))
}

// UpdateProduct handles updating an existing product
func UpdateProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}
	prometheus.RecordCatalogOperation("product", "update")

	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, err)
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := req.validate(); err != nil {
		return fail(c, err)
	}

	catalog := store.NewCatalogStore(database.GetDB())
	product, err := catalog.GetProduct(c.Request().Context(), tc, id)
	if err != nil {
		return fail(c, err)
	}

	product.Name = req.Name
	product.Price = req.Price
	product.DiscountPrice = req.DiscountPrice
	product.CategoryID = req.CategoryID
	product.Description = req.Description
	product.ImageURL = req.ImageURL
	product.Active = req.Active

	if err := catalog.UpdateProduct(c.Request().Context(), tc, product); err != nil {
		return fail(c, err)
	}

	log.Info("Product updated", zap.Uint("product_id", product.ID))
	return c.JSON(http.StatusOK, viewOf(*product))
}

// DeleteProduct handles hard-deleting a product
func DeleteProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}
	prometheus.RecordCatalogOperation("product", "delete")

	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, err)
	}

	if err := store.NewCatalogStore(database.GetDB()).DeleteProduct(c.Request().Context(), tc, id); err != nil {
		return fail(c, err)
	}

	log.Info("Product deleted", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted"})
}
