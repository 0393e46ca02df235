// Package services はハンドラーとリポジトリの間のビジネスロジックを扱います。
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"todo-api/internal/models"
	"todo-api/internal/repositories"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 1000
)

// ErrValidation は入力値の検証エラーを表します。errors.Is で判定できます。
var ErrValidation = errors.New("validation failed")

// ValidationError はクライアントに返す検証エラーです。
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is は errors.Is(err, ErrValidation) を成立させます。
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// TodoService はTodo関連のビジネスロジックを扱います。
type TodoService struct {
	todoRepo *repositories.TodoRepository
}

// NewTodoService は新しいTodoServiceを作成します。
func NewTodoService(todoRepo *repositories.TodoRepository) *TodoService {
	return &TodoService{todoRepo: todoRepo}
}

// GetTodos はすべてのTodoを挿入順で取得します。
func (s *TodoService) GetTodos(ctx context.Context) ([]*models.Todo, error) {
	return s.todoRepo.FindAll(ctx)
}

// CreateTodo は新しいTodoを作成します。title は必須です。
func (s *TodoService) CreateTodo(ctx context.Context, req *models.CreateTodoRequest) (*models.Todo, error) {
	title, err := validateTitle(req.Title)
	if err != nil {
		return nil, err
	}
	if err := validateDescription(req.Description); err != nil {
		return nil, err
	}

	todo := &models.Todo{
		Title:       title,
		Description: req.Description,
		Completed:   req.Completed,
	}
	return s.todoRepo.Create(ctx, todo)
}

// GetTodoByID は指定IDのTodoを取得します。
func (s *TodoService) GetTodoByID(ctx context.Context, id uint) (*models.Todo, error) {
	return s.todoRepo.FindByID(ctx, id)
}

// UpdateTodo はTodoを部分更新します。リクエストで指定されなかったフィールドは元の値を保持します。
func (s *TodoService) UpdateTodo(ctx context.Context, id uint, req *models.UpdateTodoRequest) (*models.Todo, error) {
	var title string
	if req.Title != nil {
		t, err := validateTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		title = t
	}
	if req.Description != nil {
		if err := validateDescription(*req.Description); err != nil {
			return nil, err
		}
	}

	var updated *models.Todo
	err := s.todoRepo.Transaction(ctx, func(repo *repositories.TodoRepository) error {
		existing, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Title != nil {
			existing.Title = title
		}
		if req.Description != nil {
			existing.Description = *req.Description
		}
		if req.Completed != nil {
			existing.Completed = *req.Completed
		}

		updated, err = repo.Save(ctx, existing)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTodo はTodoを削除します。
func (s *TodoService) DeleteTodo(ctx context.Context, id uint) error {
	return s.todoRepo.Delete(ctx, id)
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", &ValidationError{Field: "title", Message: "Title is required"}
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("Title must be at most %d characters", maxTitleLength),
		}
	}
	return title, nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return &ValidationError{
			Field:   "description",
			Message: fmt.Sprintf("Description must be at most %d characters", maxDescriptionLength),
		}
	}
	return nil
}
