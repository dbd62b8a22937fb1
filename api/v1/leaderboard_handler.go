package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sgomezd/QuizRush/internal/leaderboard"
)

type LeaderboardHandler struct {
	svc *leaderboard.LeaderboardService
}

func NewLeaderboardHandler(svc *leaderboard.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

func (h *LeaderboardHandler) Global(c echo.Context) error {
	entries, err := h.svc.Top()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"leaderboard": entries,
	})
}

func (h *LeaderboardHandler) ByGrade(c echo.Context) error {
	grade, err := strconv.Atoi(c.Param("grade"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid grade")
	}

	entries, errTop := h.svc.TopByGrade(grade)
	if errTop != nil {
		return errTop
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"leaderboard": entries,
	})
}

func (h *LeaderboardHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.AllUsers()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"users": users,
	})
}
