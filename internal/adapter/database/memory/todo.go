package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/romansndlr/remix-todos/internal/core/domain"
	"github.com/romansndlr/remix-todos/internal/core/port"
)

// TodoRepository keeps todos in process memory. Contents are lost on restart.
type TodoRepository struct {
	mu     sync.RWMutex
	todos  map[int]domain.Todo
	nextID int
}

func NewTodoRepository() port.TodoRepository {
	return &TodoRepository{
		todos:  map[int]domain.Todo{},
		nextID: 1,
	}
}

func (r *TodoRepository) ListAll(ctx context.Context) ([]domain.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	todos := make([]domain.Todo, 0, len(r.todos))
	for _, todo := range r.todos {
		todos = append(todos, todo)
	}

	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })

	return todos, nil
}

func (r *TodoRepository) Create(ctx context.Context, title string) (domain.Todo, error) {
	if err := ctx.Err(); err != nil {
		return domain.Todo{}, err
	}

	if title == "" {
		return domain.Todo{}, domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	todo := domain.Todo{ID: r.nextID, Title: title}
	r.todos[todo.ID] = todo
	r.nextID++

	return todo, nil
}

func (r *TodoRepository) SetDone(ctx context.Context, id int, done bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	todo, ok := r.todos[id]

	if !ok {
		return domain.ErrTodoNotFound
	}

	r.todos[id] = todo.Toggled(done)

	return nil
}
