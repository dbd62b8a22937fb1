package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sgomezd/QuizRush/internal/user"
)

type StatsUpdateRequest struct {
	Username string               `json:"username"`
	Stats    user.StatsSubmission `json:"stats"`
}

type StatsHandler struct {
	svc *user.UserService
}

func NewStatsHandler(svc *user.UserService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) Update(c echo.Context) error {
	var req StatsUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if req.Username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}

	if err := h.svc.MergeStats(req.Username, req.Stats); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "stats updated",
	})
}
