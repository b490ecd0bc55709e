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
	"github.com/mikekiroz/maikitto-saas/pkg/jwtutil"
	"github.com/mikekiroz/maikitto-saas/pkg/logger"
	"github.com/mikekiroz/maikitto-saas/prometheus"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a back-office account
func Register(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Email == "" || req.Password == "" {
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	var count int64
	database.GetDB().Model(&model.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		log.Warn("Email already registered", zap.String("email", req.Email))
		prometheus.RecordAuthError("duplicate_email")
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	user := model.User{Email: req.Email, Password: string(hashed)}
	if err := database.GetDB().Create(&user).Error; err != nil {
		log.Error("Failed to create user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User registered", zap.String("email", user.Email))
	return c.JSON(http.StatusCreated, echo.Map{
		"token": token,
		"user":  echo.Map{"id": user.ID, "email": user.Email},
	})
}

// PasswordRequest defines the structure for change-password requests
type PasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *PasswordRequest) validate() error {
	if r.CurrentPassword == "" || r.NewPassword == "" || r.ConfirmPassword == "" {
		return apperr.New(apperr.KindValidation, "all password fields are required")
	}
	if len(r.NewPassword) < 6 {
		return apperr.New(apperr.KindValidation, "new password must be at least 6 characters")
	}
	if r.NewPassword != r.ConfirmPassword {
		return apperr.New(apperr.KindValidation, "new password confirmation does not match")
	}
	return nil
}

// ChangePassword updates the session user's password after verifying the
// current one
func ChangePassword(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, email, err := mid.SessionUser(c)
	if err != nil {
		return fail(c, err)
	}

	var req PasswordRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse password request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := req.validate(); err != nil {
		return fail(c, err)
	}

	var user model.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		log.Error("User not found", zap.Uint("user_id", userID))
		return fail(c, apperr.Wrap(apperr.KindUpstream, "loading user", err))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		prometheus.RecordAuthError("invalid_password")
		return fail(c, apperr.New(apperr.KindUnauthenticated, "current password is incorrect"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "password update failed"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := database.GetDB().Model(&user).Update("password", string(hashed)).Error; err != nil {
		log.Error("Failed to update password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "password update failed"})
	}

	log.Info("Password changed", zap.String("email", email))
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}

// Login authenticates a user. When the user already owns a restaurant the
// issued token carries the tenant claims every scoped endpoint requires.
func Login(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if err := database.GetDB().Where("email = ?", req.Email).First(&user).Error; err != nil {
		log.Error("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Error("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	response := echo.Map{
		"user": echo.Map{"id": user.ID, "email": user.Email},
	}

	// Resolve the user's restaurant; absence means onboarding is pending
	// and the token is issued without tenant context.
	tenants := store.NewTenantStore(database.GetDB())
	restaurant, err := tenants.GetByOwner(c.Request().Context(), user.ID)
	if err != nil && !apperr.IsNotFound(err) {
		return fail(c, err)
	}

	var token string
	if err == nil {
		tenantID := restaurant.ID
		token, err = jwtutil.GenerateTokenWithTenant(user.Email, user.ID, &tenantID, restaurant.Name)
		response["restaurant"] = restaurant
	} else {
		token, err = jwtutil.GenerateToken(user.Email, user.ID)
		response["onboarding_required"] = true
	}
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}
	response["token"] = token

	log.Info("User logged in", zap.String("email", user.Email))
	return c.JSON(http.StatusOK, response)
}
