package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/worklet-dev/worklet/internal/handlers"
	"github.com/worklet-dev/worklet/internal/middleware"
	"github.com/worklet-dev/worklet/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	handlers.RegisterValidations()

	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:project_id", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateUser)
		}

		api.POST("/users/delete", middleware.AuthMiddleware(), handlers.DeleteUser)

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.DELETE("/:project_id", handlers.DeleteProject)

			projects.GET("/:project_id/timeline", handlers.GetTimeline)
			projects.PUT("/:project_id/weeks/:week_key/collapse", handlers.ToggleWeekCollapse)
		}

		sessions := api.Group("/sessions", middleware.AuthMiddleware())
		{
			sessions.POST("/start", handlers.StartSession)
			sessions.POST("/end", handlers.EndSession)
		}
	}

	return r
}
