// Package testutil はテスト用のデータベースとルーターを提供します。
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"todo-api/internal/config"
	"todo-api/internal/database"
	"todo-api/internal/models"
	"todo-api/internal/routes"
)

// Envelope はAPIレスポンスの共通ラッパーをデコードするための構造体です。
type Envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Status  string          `json:"status"`
}

// DiscardLogger は何も出力しないロガーを返します。
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetupTestDB はインメモリ sqlite を開き、スキーマを作成します。
// テスト終了時に接続は閉じられ、データベースは破棄されます。
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.ForTesting().Database, DiscardLogger())
	require.NoError(t, err, "Failed to open test database")
	require.NoError(t, database.Migrate(db), "Failed to migrate test database")

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// SetupTestRouter はテスト用の設定でGinルーターをセットアップします。
func SetupTestRouter(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	return SetupTestRouterWithConfig(t, config.ForTesting())
}

// SetupTestRouterWithConfig は cfg を使ってGinルーターをセットアップします。
func SetupTestRouterWithConfig(t *testing.T, cfg *config.Config) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := SetupTestDB(t)
	return db, routes.SetupRouter(cfg, db, DiscardLogger())
}

// CreateTestTodo はAPIを経由せずにTODOを直接データベースへ保存します。
func CreateTestTodo(t *testing.T, db *gorm.DB, title, description string) *models.Todo {
	t.Helper()

	todo := &models.Todo{Title: title, Description: description}
	require.NoError(t, db.Create(todo).Error)
	require.NotZero(t, todo.ID)
	return todo
}

// PerformRequest はリクエストをルーターに送り、レスポンスを返します。
// body が nil 以外の場合は JSON にエンコードして送信します。
func PerformRequest(t *testing.T, router http.Handler, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// DecodeEnvelope はレスポンスボディを Envelope にデコードします。
func DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "Response should be valid JSON: %s", w.Body.String())
	return env
}

// DecodeTodo は Envelope の data を Todo にデコードします。
func DecodeTodo(t *testing.T, env Envelope) models.Todo {
	t.Helper()

	var todo models.Todo
	require.NoError(t, json.Unmarshal(env.Data, &todo))
	return todo
}

// DecodeTodos は Envelope の data を Todo のスライスにデコードします。
func DecodeTodos(t *testing.T, env Envelope) []models.Todo {
	t.Helper()

	var todos []models.Todo
	require.NoError(t, json.Unmarshal(env.Data, &todos))
	return todos
}
