// Package models はTodoを定義します。
package models

import (
	"time"
)

// Todo は todos テーブルにマッピングされるToDoタスクです。
type Todo struct {
	ID          uint      `json:"id" gorm:"primaryKey"`                  // 主キー (自動採番)
	Title       string    `json:"title" gorm:"size:255;not null"`        // タスクのタイトル（必須）
	Description string    `json:"description" gorm:"size:1000;not null"` // 説明 (任意、デフォルトは空文字)
	Completed   bool      `json:"completed" gorm:"not null"`             // 完了状態
	CreatedAt   time.Time `json:"created_at"`                            // 作成日時
	UpdatedAt   time.Time `json:"updated_at"`                            // 更新日時
}

// CreateTodoRequest は POST /api/todos のリクエストボディです。
// title の必須チェックはサービス層で行うため、binding タグは付けません。
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// UpdateTodoRequest は PUT /api/todos/:id のリクエストボディです。
// nil のフィールドは更新しません。
type UpdateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}
