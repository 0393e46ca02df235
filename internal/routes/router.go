// Package routes はroutingを行います。
package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"todo-api/internal/config"
	"todo-api/internal/handlers"
	"todo-api/internal/repositories"
	"todo-api/internal/services"
)

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(cfg *config.Config, db *gorm.DB, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(RequestID(), RequestLogger(logger), Recovery())

	// CORS対策
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader}
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	// リポジトリ
	todoRepo := repositories.NewTodoRepository(db)

	// サービス
	todoService := services.NewTodoService(todoRepo)

	// ハンドラー
	healthHandler := handlers.NewHealthHandler(db)
	todoHandler := handlers.NewTodoHandler(todoService)

	r.NoRoute(func(c *gin.Context) {
		handlers.RespondError(c, http.StatusNotFound, "Resource not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.RespondError(c, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// ルーティング
	api := r.Group("/api")
	api.GET("/health", healthHandler.HealthCheckHandler)
	api.GET("/dbcheck", healthHandler.DBCheckHandler)

	todos := api.Group("/todos")
	if cfg.AuthEnabled() {
		todos.Use(AuthMiddleware(services.NewJWTService(cfg.JWTSecret)))
	}
	{
		todos.GET("", todoHandler.GetTodosHandler)
		todos.POST("", todoHandler.CreateTodoHandler)
		todos.GET("/:id", todoHandler.GetTodoByIDHandler)
		todos.PUT("/:id", todoHandler.UpdateTodoHandler)
		todos.DELETE("/:id", todoHandler.DeleteTodoHandler)
	}

	return r
}
