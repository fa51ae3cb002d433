package domain

// Action is one submission to the todo endpoint. The set of actions is
// closed: only CreateTodo and ToggleTodo implement it.
type Action interface {
	Name() string
	sealed()
}

type CreateTodo struct {
	Title string `validate:"required"`
}

type ToggleTodo struct {
	ID   int
	Done bool
}

func (CreateTodo) Name() string { return "create" }
func (CreateTodo) sealed()      {}

func (ToggleTodo) Name() string { return "toggle" }
func (ToggleTodo) sealed()      {}
