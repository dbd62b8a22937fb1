package v1

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/sgomezd/QuizRush/internal/user"
)

type UserHandler struct {
	svc *user.UserService
}

func NewUserHandler(svc *user.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Register(c echo.Context) error {
	var req user.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	created, token, err := h.svc.Register(req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"user":    created,
		"token":   token,
	})
}

func (h *UserHandler) Login(c echo.Context) error {
	var req user.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	logged, token, err := h.svc.Login(req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user":    logged,
		"token":   token,
	})
}

// DeleteAccount removes the authenticated user; the stats row goes with it
// through the foreign key cascade.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*user.JwtCustomClaims)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	if err := h.svc.DeleteAccount(claims.Id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "account deleted",
	})
}
