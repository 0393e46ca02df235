package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"todo-api/internal/database"
	"todo-api/internal/logging"
)

// HealthHandler はヘルスチェック系のエンドポイントを扱います。
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler は新しいHealthHandlerを作成します。
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheckHandler はアプリケーションが起動していることを返します。
func (h *HealthHandler) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// DBCheckHandler はデータベース接続の健全性を確認します。
func (h *HealthHandler) DBCheckHandler(c *gin.Context) {
	if err := database.Ping(c.Request.Context(), h.db); err != nil {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "database ping failed",
			slog.String("operation", "DBCheck"),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database connection failed",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Database connection is healthy"})
}
