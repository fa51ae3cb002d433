package http

import (
	"github.com/romansndlr/remix-todos/internal/adapter/http/handler"
	"github.com/romansndlr/remix-todos/internal/adapter/http/validation"
	"github.com/romansndlr/remix-todos/internal/core/port"
	"github.com/romansndlr/remix-todos/internal/core/service"
	"github.com/romansndlr/remix-todos/internal/core/telemetry"
	"github.com/romansndlr/remix-todos/pkg/config"
)

type Container struct {
	TodoRepo    port.TodoRepository
	TodoService port.TodoService
	TodoHandler *handler.TodoHandler
}

func NewContainer(todoRepo port.TodoRepository, probe port.Telemetry, metrics *telemetry.AppMetrics, logger *config.Logger) *Container {
	todoSvc := service.NewTodoService(todoRepo, validation.NewValidator(), probe, metrics)

	return &Container{
		TodoRepo:    todoRepo,
		TodoService: todoSvc,
		TodoHandler: handler.NewTodoHandler(todoSvc, logger),
	}
}
