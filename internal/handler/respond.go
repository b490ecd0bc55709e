package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mikekiroz/maikitto-saas/internal/apperr"
	"github.com/mikekiroz/maikitto-saas/pkg/logger"
	"go.uber.org/zap"
)

// fail maps a typed core error to an HTTP response. Upstream failures
// are logged with their cause and surfaced; nothing is retried here.
func fail(c echo.Context, err error) error {
	log := logger.FromEcho(c)

	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindUnauthenticated:
		status = http.StatusUnauthorized
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindUpstream:
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		log.Error("Request failed", zap.Error(err))
	} else {
		log.Warn("Request rejected", zap.Error(err))
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
