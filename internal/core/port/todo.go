package port

import (
	"context"

	"github.com/romansndlr/remix-todos/internal/core/domain"
)

type TodoRepository interface {
	ListAll(ctx context.Context) ([]domain.Todo, error)
	Create(ctx context.Context, title string) (domain.Todo, error)
	SetDone(ctx context.Context, id int, done bool) error
}

type TodoService interface {
	List(ctx context.Context) ([]domain.Todo, error)
	Create(ctx context.Context, input domain.CreateTodo) (domain.Todo, error)
	Toggle(ctx context.Context, input domain.ToggleTodo) error
	Apply(ctx context.Context, action domain.Action) error
}
