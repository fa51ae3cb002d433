package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/romansndlr/remix-todos/internal/core/domain"
	"github.com/romansndlr/remix-todos/internal/core/port"
	"github.com/romansndlr/remix-todos/internal/core/telemetry"
)

const serviceName = "todo"

type TodoService struct {
	repo      port.TodoRepository
	validator port.Validator
	telemetry port.Telemetry
	metrics   *telemetry.AppMetrics
}

// NewTodoService wires the service. probe and metrics may be nil.
func NewTodoService(repo port.TodoRepository, validator port.Validator, probe port.Telemetry, metrics *telemetry.AppMetrics) *TodoService {
	if probe == nil {
		probe = telemetry.NewNoOpProbe()
	}

	return &TodoService{
		repo:      repo,
		validator: validator,
		telemetry: probe,
		metrics:   metrics,
	}
}

func (ts *TodoService) List(ctx context.Context) ([]domain.Todo, error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, serviceName, "List", nil)
	defer span.End()

	startTime := time.Now()

	todos, err := ts.repo.ListAll(ctx)
	ts.telemetry.RecordServiceOperation(ctx, serviceName, "List", time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	if todos == nil {
		todos = []domain.Todo{}
	}

	span.SetAttributes(map[string]interface{}{"todo.count": len(todos)})

	return todos, nil
}

func (ts *TodoService) Create(ctx context.Context, input domain.CreateTodo) (domain.Todo, error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, serviceName, "Create", nil)
	defer span.End()

	startTime := time.Now()

	todo, err := ts.create(ctx, input)
	ts.telemetry.RecordServiceOperation(ctx, serviceName, "Create", time.Since(startTime), err)
	ts.record(ctx, input.Name(), err)

	return todo, err
}

func (ts *TodoService) create(ctx context.Context, input domain.CreateTodo) (domain.Todo, error) {
	if err := ts.validator.Validate(input); err != nil {
		return domain.Todo{}, err
	}

	todo, err := ts.repo.Create(ctx, input.Title)

	if err != nil {
		return domain.Todo{}, fmt.Errorf("create todo: %w", err)
	}

	ts.telemetry.RecordBusinessEvent(ctx, "created", "todo", strconv.Itoa(todo.ID), map[string]interface{}{
		"title": todo.Title,
	})

	return todo, nil
}

func (ts *TodoService) Toggle(ctx context.Context, input domain.ToggleTodo) error {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, serviceName, "Toggle", map[string]interface{}{
		"todo.id":   input.ID,
		"todo.done": input.Done,
	})
	defer span.End()

	startTime := time.Now()

	err := ts.repo.SetDone(ctx, input.ID, input.Done)

	if err != nil {
		err = fmt.Errorf("toggle todo %d: %w", input.ID, err)
	} else {
		ts.telemetry.RecordBusinessEvent(ctx, "toggled", "todo", strconv.Itoa(input.ID), map[string]interface{}{
			"done": input.Done,
		})
	}

	ts.telemetry.RecordServiceOperation(ctx, serviceName, "Toggle", time.Since(startTime), err)
	ts.record(ctx, input.Name(), err)

	return err
}

// Apply runs a decoded submission.
func (ts *TodoService) Apply(ctx context.Context, action domain.Action) error {
	switch a := action.(type) {
	case domain.CreateTodo:
		_, err := ts.Create(ctx, a)
		return err
	case domain.ToggleTodo:
		return ts.Toggle(ctx, a)
	}

	return fmt.Errorf("%w: %T", domain.ErrUnknownMethod, action)
}

func (ts *TodoService) record(ctx context.Context, operation string, err error) {
	if ts.metrics == nil {
		return
	}

	ts.metrics.RecordTodoOperation(ctx, operation, Outcome(err))
}

// Outcome labels an operation result for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case domain.IsValidationError(err):
		return "invalid"
	case errors.Is(err, domain.ErrTodoNotFound):
		return "not_found"
	default:
		return "error"
	}
}
