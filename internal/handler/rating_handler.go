package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mikekiroz/maikitto-saas/internal/apperr"
	mid "github.com/mikekiroz/maikitto-saas/internal/middleware"
	"github.com/mikekiroz/maikitto-saas/internal/model"
	"github.com/mikekiroz/maikitto-saas/internal/store"
	"github.com/mikekiroz/maikitto-saas/pkg/database"
	"github.com/mikekiroz/maikitto-saas/pkg/logger"
	"go.uber.org/zap"
)

// RatingRequest is the review payload the ordering channel submits
type RatingRequest struct {
	CustomerName string     `json:"customer_name"`
	Stars        int        `json:"stars"`
	Comment      string     `json:"comment"`
	RatedAt      *time.Time `json:"rated_at"`
}

// ListRatings handles retrieving the tenant's customer reviews
func ListRatings(c echo.Context) error {
	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}

	ratings, err := store.NewRatingStore(database.GetDB()).List(c.Request().Context(), tc)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ratings)
}

// IngestRating appends a customer review from the ordering channel
func IngestRating(c echo.Context) error {
	log := logger.FromEcho(c)

	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}

	var req RatingRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Stars < 1 || req.Stars > 5 {
		return fail(c, apperr.New(apperr.KindValidation, "stars must be between 1 and 5"))
	}

	rating := model.Rating{
		CustomerName: req.CustomerName,
		Stars:        req.Stars,
		Comment:      req.Comment,
	}
	if req.RatedAt != nil {
		rating.RatedAt = *req.RatedAt
	}

	if err := store.NewRatingStore(database.GetDB()).Create(c.Request().Context(), tc, &rating); err != nil {
		return fail(c, err)
	}

	log.Info("Rating ingested",
		zap.Uint("rating_id", rating.ID),
		zap.Int("stars", rating.Stars))
	return c.JSON(http.StatusCreated, rating)
}
