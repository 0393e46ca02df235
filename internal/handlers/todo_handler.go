// Package handlers はHTTPリクエストを処理するGinハンドラーを提供します。
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todo-api/internal/logging"
	"todo-api/internal/models"
	"todo-api/internal/repositories"
	"todo-api/internal/services"
)

// TodoHandler はTodo関連のハンドラーを管理します。
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler は新しいTodoHandlerを作成します。
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// GetTodosHandler はTodoリストを取得します。
func (h *TodoHandler) GetTodosHandler(c *gin.Context) {
	todos, err := h.todoService.GetTodos(c.Request.Context())
	if err != nil {
		h.internalError(c, "GetTodos", 0, err, "Failed to fetch todos")
		return
	}
	RespondList(c, http.StatusOK, todos)
}

// CreateTodoHandler は新しいTodoを作成します。
func (h *TodoHandler) CreateTodoHandler(c *gin.Context) {
	var req models.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	createdTodo, err := h.todoService.CreateTodo(c.Request.Context(), &req)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			RespondError(c, http.StatusBadRequest, verr.Message)
			return
		}
		h.internalError(c, "CreateTodo", 0, err, "Failed to save todo to database")
		return
	}
	RespondData(c, http.StatusCreated, createdTodo)
}

// GetTodoByIDHandler は指定IDのTodoを取得します。
func (h *TodoHandler) GetTodoByIDHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	todo, err := h.todoService.GetTodoByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrTodoNotFound) {
			RespondError(c, http.StatusNotFound, "Todo not found")
			return
		}
		h.internalError(c, "GetTodoByID", id, err, "Failed to fetch todo")
		return
	}
	RespondData(c, http.StatusOK, todo)
}

// UpdateTodoHandler はTodoを部分更新します。
func (h *TodoHandler) UpdateTodoHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updatedTodo, err := h.todoService.UpdateTodo(c.Request.Context(), id, &req)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			RespondError(c, http.StatusBadRequest, verr.Message)
		case errors.Is(err, repositories.ErrTodoNotFound):
			RespondError(c, http.StatusNotFound, "Todo not found")
		default:
			h.internalError(c, "UpdateTodo", id, err, "Failed to update todo")
		}
		return
	}
	RespondData(c, http.StatusOK, updatedTodo)
}

// DeleteTodoHandler はTodoを削除します。
func (h *TodoHandler) DeleteTodoHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.todoService.DeleteTodo(c.Request.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrTodoNotFound) {
			RespondError(c, http.StatusNotFound, "Todo not found")
			return
		}
		h.internalError(c, "DeleteTodo", id, err, "Failed to delete todo")
		return
	}
	RespondMessage(c, http.StatusOK, "Todo deleted successfully")
}

// internalError は詳細をログに残し、クライアントには汎用メッセージだけを返します。
func (h *TodoHandler) internalError(c *gin.Context, operation string, id uint, err error, message string) {
	ctx := c.Request.Context()
	attrs := []any{slog.String("operation", operation), slog.Any("error", err)}
	if id != 0 {
		attrs = append(attrs, slog.Uint64("todo_id", uint64(id)))
	}
	logging.FromContext(ctx).ErrorContext(ctx, "todo request failed", attrs...)
	RespondError(c, http.StatusInternalServerError, message)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		RespondError(c, http.StatusBadRequest, "Invalid ID format")
		return 0, false
	}
	return uint(id), true
}
