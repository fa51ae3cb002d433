package response

import "github.com/romansndlr/remix-todos/internal/core/domain"

type TodoResponse struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

type ListResponse struct {
	Todos []TodoResponse `json:"todos"`
}

// ActionResponse is the body of every create/toggle answer. Errors is
// always an object, never null.
type ActionResponse struct {
	Success bool                `json:"success"`
	Errors  map[string][]string `json:"errors"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Errors  []ValidationError `json:"errors"`
	Details any               `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func NewTodoResponse(todo domain.Todo) TodoResponse {
	return TodoResponse{
		ID:    todo.ID,
		Title: todo.Title,
		Done:  todo.Done,
	}
}

func NewListResponse(todos []domain.Todo) ListResponse {
	items := make([]TodoResponse, 0, len(todos))

	for _, todo := range todos {
		items = append(items, NewTodoResponse(todo))
	}

	return ListResponse{Todos: items}
}

func Succeeded() ActionResponse {
	return ActionResponse{Success: true, Errors: map[string][]string{}}
}

// Rejected is an unsuccessful answer carrying field messages.
func Rejected(fields map[string][]string) ActionResponse {
	if fields == nil {
		fields = map[string][]string{}
	}

	return ActionResponse{Success: false, Errors: fields}
}

// Failed is an unsuccessful answer without field detail.
func Failed() ActionResponse {
	return Rejected(nil)
}
