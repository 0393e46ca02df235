// Package repositories はデータベース操作を行うリポジトリを提供します。
package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"todo-api/internal/models"
)

// ErrTodoNotFound はTODOが見つからない場合のエラーです。
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository は todos テーブルへの CRUD を行います。
type TodoRepository struct {
	DB *gorm.DB
}

// NewTodoRepository は新しいTodoRepositoryインスタンスを作成します。
func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{DB: db}
}

// WithTx はトランザクション tx を使う TodoRepository を返します。
func (r *TodoRepository) WithTx(tx *gorm.DB) *TodoRepository {
	return &TodoRepository{DB: tx}
}

// Transaction は fn を1つのトランザクション内で実行します。
// fn がエラーを返した場合はロールバックされます。
func (r *TodoRepository) Transaction(ctx context.Context, fn func(repo *TodoRepository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// Create は新しいTodoタスクを挿入します。ID とタイムスタンプは GORM が設定します。
func (r *TodoRepository) Create(ctx context.Context, t *models.Todo) (*models.Todo, error) {
	if err := r.DB.WithContext(ctx).Create(t).Error; err != nil {
		return nil, fmt.Errorf("could not insert todo: %w", err)
	}
	return t, nil
}

// FindAll はすべてのTodoタスクを挿入順 (id 昇順) で取得します。
func (r *TodoRepository) FindAll(ctx context.Context) ([]*models.Todo, error) {
	todos := make([]*models.Todo, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("could not query todos: %w", err)
	}
	return todos, nil
}

// Count は保存されているTodoの件数を返します。
func (r *TodoRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Todo{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("could not count todos: %w", err)
	}
	return n, nil
}

// FindByID は指定されたIDのTodoタスクを取得します。
func (r *TodoRepository) FindByID(ctx context.Context, id uint) (*models.Todo, error) {
	var t models.Todo
	err := r.DB.WithContext(ctx).First(&t, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("could not query todo: %w", err)
	}
	return &t, nil
}

// Save は既存のTodoタスクの全カラムを保存し、updated_at を更新します。
func (r *TodoRepository) Save(ctx context.Context, t *models.Todo) (*models.Todo, error) {
	if t.ID == 0 {
		return nil, ErrTodoNotFound
	}
	if err := r.DB.WithContext(ctx).Save(t).Error; err != nil {
		return nil, fmt.Errorf("could not update todo: %w", err)
	}
	return t, nil
}

// Delete は指定されたIDのTodoタスクを削除します。
func (r *TodoRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&models.Todo{}, id)
	if result.Error != nil {
		return fmt.Errorf("could not delete todo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}
