package routes

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"todo-api/internal/handlers"
	"todo-api/internal/logging"
	"todo-api/internal/services"
)

// RequestIDHeader はリクエストIDを受け渡すヘッダー名です。
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

// RequestID はリクエストIDをコンテキストとレスポンスヘッダーに設定するミドルウェアです。
// クライアントが X-Request-ID を送ってきた場合はそれを使い、無ければ UUID を生成します。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger はリクエストごとのロガーを context に入れ、完了時にアクセスログを1行出力します。
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqLogger := logger.With(slog.String("request_id", c.GetString("request_id")))
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), reqLogger))

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		reqLogger.LogAttrs(c.Request.Context(), level, "http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		)
	}
}

// Recovery はパニックを捕捉し、500 のエラーレスポンスに変換します。
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		ctx := c.Request.Context()
		logging.FromContext(ctx).ErrorContext(ctx, "panic recovered",
			slog.Any("panic", recovered),
			slog.String("path", c.Request.URL.Path),
		)
		handlers.AbortWithError(c, http.StatusInternalServerError, "Internal server error")
	})
}

// AuthMiddleware はJWTトークンを検証し、トークンの subject をコンテキストに設定するミドルウェアです。
func AuthMiddleware(jwtService *services.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			handlers.AbortWithError(c, http.StatusUnauthorized, "Authorization header required")
			return
		}
		// "Bearer " プレフィックスを削除
		if !strings.HasPrefix(tokenString, "Bearer ") {
			handlers.AbortWithError(c, http.StatusUnauthorized, "Invalid token format")
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			ctx := c.Request.Context()
			logging.FromContext(ctx).DebugContext(ctx, "token rejected", slog.Any("error", err))
			handlers.AbortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set("token_subject", claims.Subject)
		c.Next()
	}
}
