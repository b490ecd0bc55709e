package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mikekiroz/maikitto-saas/internal/apperr"
	"github.com/mikekiroz/maikitto-saas/internal/tenant"
	"github.com/mikekiroz/maikitto-saas/pkg/jwtutil"
	"github.com/mikekiroz/maikitto-saas/pkg/logger"
	"github.com/mikekiroz/maikitto-saas/prometheus"
	"go.uber.org/zap"
)

// AuthMiddleware validates the JWT token and stores the session identity
// in the request context. Requests without a valid token are refused
// outright; nothing downstream ever runs unscoped.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		// Store user info in context for later use
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)

		// Store tenant information if available. Onboarding endpoints run
		// without it; scoped groups add RequireTenant on top.
		if claims.TenantID != nil {
			c.Set("tenant_id", *claims.TenantID)
			c.Set("tenant_name", claims.TenantName)
			log.Debug("Request authenticated with tenant context",
				zap.Uint("tenant_id", *claims.TenantID),
				zap.String("tenant_name", claims.TenantName))
		}

		return next(c)
	}
}

// RequireTenant refuses requests whose session has no tenant context.
// Applied to every route group that touches tenant-owned data.
func RequireTenant(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := c.Get("tenant_id").(uint); !ok {
			logger.FromEcho(c).Warn("Session has no tenant context")
			prometheus.RecordAuthError("missing_tenant")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "restaurant onboarding required"})
		}
		return next(c)
	}
}

// TenantContext builds the tenant context for the current request from
// the claims stored by AuthMiddleware.
func TenantContext(c echo.Context) (tenant.Context, error) {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return tenant.Context{}, apperr.New(apperr.KindUnauthenticated, "authentication required")
	}
	tenantID, ok := c.Get("tenant_id").(uint)
	if !ok {
		return tenant.Context{}, apperr.New(apperr.KindUnauthenticated, "restaurant onboarding required")
	}
	email, _ := c.Get("email").(string)
	return tenant.Context{TenantID: tenantID, UserID: userID, Email: email}, nil
}

// SessionUser returns the authenticated user id and email, for endpoints
// that run before onboarding completes.
func SessionUser(c echo.Context) (uint, string, error) {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return 0, "", apperr.New(apperr.KindUnauthenticated, "authentication required")
	}
	email, _ := c.Get("email").(string)
	return userID, email, nil
}
