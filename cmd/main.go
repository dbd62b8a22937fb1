package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	api_middleware "github.com/sgomezd/QuizRush/api/middleware"
	v1 "github.com/sgomezd/QuizRush/api/v1"
	"github.com/sgomezd/QuizRush/internal/apperrors"
	"github.com/sgomezd/QuizRush/internal/leaderboard"
	"github.com/sgomezd/QuizRush/internal/user"
	"github.com/sgomezd/QuizRush/pkg/db"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️File .env not found, using system values")
	}

	db.Init()
	db.DB.AutoMigrate(&user.User{}, &user.UserStats{})

	userRepo := user.NewUserRepository(db.DB)
	userService := user.NewUserService(userRepo)
	leaderboardRepo := leaderboard.NewLeaderboardRepository(db.DB)
	leaderboardService := leaderboard.NewLeaderboardService(leaderboardRepo)

	userHandler := v1.NewUserHandler(userService)
	statsHandler := v1.NewStatsHandler(userService)
	leaderboardHandler := v1.NewLeaderboardHandler(leaderboardService)

	e := echo.New()
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "QuizRush API is running"})
	})

	api := e.Group("/api")
	api.POST("/register", userHandler.Register)
	api.POST("/login", userHandler.Login)
	api.GET("/leaderboard", leaderboardHandler.Global)
	api.GET("/leaderboard/:grade", leaderboardHandler.ByGrade)
	api.GET("/users", leaderboardHandler.ListUsers)

	g := api.Group("")
	g.Use(api_middleware.SetupJWTMiddleware())
	g.POST("/stats/update", statsHandler.Update)
	g.DELETE("/account", userHandler.DeleteAccount)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
