package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mikekiroz/maikitto-saas/internal/message"
	mid "github.com/mikekiroz/maikitto-saas/internal/middleware"
	"github.com/mikekiroz/maikitto-saas/pkg/database"
	"github.com/mikekiroz/maikitto-saas/pkg/logger"
	"go.uber.org/zap"
)

// MessageRequest defines the structure for customizing bot copy
type MessageRequest struct {
	Text string `json:"text"`
}

// ListMessages handles retrieving the tenant's resolved bot messages
func ListMessages(c echo.Context) error {
	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}

	messages, err := message.NewResolver(database.GetDB()).ResolveAll(c.Request().Context(), tc)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, messages)
}

// GetMessage handles retrieving one resolved bot message by type
func GetMessage(c echo.Context) error {
	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}

	msg, err := message.NewResolver(database.GetDB()).
		Resolve(c.Request().Context(), tc, c.Param("type"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, msg)
}

// SaveMessage handles storing the tenant's custom text for a message type
func SaveMessage(c echo.Context) error {
	log := logger.FromEcho(c)

	tc, err := mid.TenantContext(c)
	if err != nil {
		return fail(c, err)
	}

	var req MessageRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	msgType := c.Param("type")
	msg, err := message.NewResolver(database.GetDB()).
		Save(c.Request().Context(), tc, msgType, req.Text)
	if err != nil {
		return fail(c, err)
	}

	log.Info("Bot message customized", zap.String("type", msgType))
	return c.JSON(http.StatusOK, msg)
}
