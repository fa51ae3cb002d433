package request

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/romansndlr/remix-todos/internal/core/domain"
)

const (
	MethodCreate = "POST"
	MethodToggle = "PATCH"
)

// ActionForm is the raw form body posted to the todo endpoint.
type ActionForm struct {
	Method string `form:"_method"`
	Title  string `form:"todo"`
	TodoID string `form:"todoId"`
	Done   string `form:"done"`
}

// Decode turns the form into a domain action. The discriminator must match
// exactly.
func (f ActionForm) Decode() (domain.Action, error) {
	switch f.Method {
	case MethodCreate:
		return domain.CreateTodo{Title: f.Title}, nil
	case MethodToggle:
		return f.decodeToggle()
	}

	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMethod, f.Method)
}

func (f ActionForm) decodeToggle() (domain.Action, error) {
	id, err := strconv.Atoi(strings.TrimSpace(f.TodoID))

	if err != nil {
		return nil, fmt.Errorf("%w: todoId %q", domain.ErrInvalidInput, f.TodoID)
	}

	done := false

	if raw := strings.TrimSpace(f.Done); raw != "" {
		done, err = strconv.ParseBool(raw)

		if err != nil {
			return nil, fmt.Errorf("%w: done %q", domain.ErrInvalidInput, f.Done)
		}
	}

	return domain.ToggleTodo{ID: id, Done: done}, nil
}
