package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/models"
	"todo-api/internal/repositories"
	"todo-api/internal/services"
	"todo-api/testutil"
)

func newService(t *testing.T) *services.TodoService {
	t.Helper()
	return services.NewTodoService(repositories.NewTodoRepository(testutil.SetupTestDB(t)))
}

func ptr[T any](v T) *T { return &v }

func TestCreateTodo_Defaults(t *testing.T) {
	svc := newService(t)

	todo, err := svc.CreateTodo(context.Background(), &models.CreateTodoRequest{Title: "  Test Todo  "})
	require.NoError(t, err)
	assert.NotZero(t, todo.ID)
	assert.Equal(t, "Test Todo", todo.Title)
	assert.Equal(t, "", todo.Description)
	assert.False(t, todo.Completed)
}

func TestCreateTodo_Validation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   models.CreateTodoRequest
		field string
	}{
		{"missing title", models.CreateTodoRequest{}, "title"},
		{"blank title", models.CreateTodoRequest{Title: "   "}, "title"},
		{"title too long", models.CreateTodoRequest{Title: strings.Repeat("a", 256)}, "title"},
		{"description too long", models.CreateTodoRequest{Title: "ok", Description: strings.Repeat("d", 1001)}, "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTodo(ctx, &tt.req)
			require.ErrorIs(t, err, services.ErrValidation)

			var verr *services.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	todos, err := svc.GetTodos(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestUpdateTodo_Partial(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.CreateTodo(ctx, &models.CreateTodoRequest{Title: "Original Title", Description: "unchanged"})
	require.NoError(t, err)

	updated, err := svc.UpdateTodo(ctx, created.ID, &models.UpdateTodoRequest{
		Title:     ptr("Updated Title"),
		Completed: ptr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Updated Title", updated.Title)
	assert.True(t, updated.Completed)
	assert.Equal(t, "unchanged", updated.Description)

	// 何も指定しなければ何も変わらない
	same, err := svc.UpdateTodo(ctx, created.ID, &models.UpdateTodoRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", same.Title)
	assert.True(t, same.Completed)

	cleared, err := svc.UpdateTodo(ctx, created.ID, &models.UpdateTodoRequest{Description: ptr(""), Completed: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "", cleared.Description)
	assert.False(t, cleared.Completed)
}

func TestUpdateTodo_NotFound(t *testing.T) {
	svc := newService(t)

	_, err := svc.UpdateTodo(context.Background(), 9999, &models.UpdateTodoRequest{Title: ptr("x")})
	assert.ErrorIs(t, err, repositories.ErrTodoNotFound)
}

func TestUpdateTodo_EmptyTitleRejected(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.CreateTodo(ctx, &models.CreateTodoRequest{Title: "Keep"})
	require.NoError(t, err)

	_, err = svc.UpdateTodo(ctx, created.ID, &models.UpdateTodoRequest{Title: ptr("")})
	require.ErrorIs(t, err, services.ErrValidation)

	found, err := svc.GetTodoByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keep", found.Title)
}

func TestDeleteTodo(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.CreateTodo(ctx, &models.CreateTodoRequest{Title: "To Be Deleted"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTodo(ctx, created.ID))

	_, err = svc.GetTodoByID(ctx, created.ID)
	assert.ErrorIs(t, err, repositories.ErrTodoNotFound)
	assert.ErrorIs(t, svc.DeleteTodo(ctx, created.ID), repositories.ErrTodoNotFound)
}
