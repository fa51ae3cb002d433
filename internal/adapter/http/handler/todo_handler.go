package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	. "github.com/romansndlr/remix-todos/internal/adapter/http/helper"
	"github.com/romansndlr/remix-todos/internal/adapter/http/view"
	"github.com/romansndlr/remix-todos/internal/core/domain"
	"github.com/romansndlr/remix-todos/internal/core/model/request"
	"github.com/romansndlr/remix-todos/internal/core/model/response"
	"github.com/romansndlr/remix-todos/internal/core/port"
	"github.com/romansndlr/remix-todos/internal/core/util"
	"github.com/romansndlr/remix-todos/pkg/config"
	. "github.com/romansndlr/remix-todos/pkg/tracing"
)

type TodoHandler struct {
	svc    port.TodoService
	Logger *config.Logger
}

func NewTodoHandler(svc port.TodoService, logger *config.Logger) *TodoHandler {
	return &TodoHandler{
		svc:    svc,
		Logger: logger,
	}
}

// Index lists every todo, as JSON or as the rendered page.
func (t *TodoHandler) Index(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.Index", []attribute.KeyValue{
		attribute.String("handler.operation", "Index"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	todos, err := t.svc.List(ctx)

	if err != nil {
		AddSpanError(span, err)

		t.Logger.ErrorWithTrace(ctx, "Failed to list todos", zap.Error(err))

		if WantsHTML(c) {
			RenderPage(c, http.StatusInternalServerError, view.Page{Failed: true})
			return
		}

		SendInternalError(c, "Error listing todos")
		return
	}

	AddHTTPAttributes(span, c.Request.Method, c.FullPath(), http.StatusOK)

	list := response.NewListResponse(todos)

	if WantsHTML(c) {
		RenderPage(c, http.StatusOK, view.Page{Todos: list.Todos})
		return
	}

	c.JSON(http.StatusOK, list)
}

// Submit decodes a create or toggle submission and applies it.
func (t *TodoHandler) Submit(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.Submit", []attribute.KeyValue{
		attribute.String("handler.operation", "Submit"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	form, err := util.BindForm[request.ActionForm](c)

	if err != nil {
		AddSpanError(span, err)
		t.respondFailure(c, err)
		return
	}

	action, err := form.Decode()

	if err == nil {
		span.SetAttributes(attribute.String("todo.action", action.Name()))
		err = t.svc.Apply(ctx, action)
	}

	if err != nil {
		AddSpanError(span, err)
		t.respondFailure(c, err)
		return
	}

	AddHTTPAttributes(span, c.Request.Method, c.FullPath(), http.StatusCreated)

	if WantsHTML(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	SendAction(c, http.StatusCreated, response.Succeeded())
}

func (t *TodoHandler) respondFailure(c *gin.Context, err error) {
	ctx := c.Request.Context()

	if errors.Is(err, domain.ErrUnknownMethod) {
		t.Logger.ErrorWithTrace(ctx, "Rejected submission with unknown method", zap.Error(err))
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	status, body := actionFailure(err)

	t.Logger.Logger.Ctx(ctx).Warn("Todo submission failed",
		zap.Error(err),
		zap.Int("status", status),
	)

	if WantsHTML(c) {
		page := view.Page{Errors: body.Errors, Failed: len(body.Errors) == 0}

		if todos, listErr := t.svc.List(ctx); listErr == nil {
			page.Todos = response.NewListResponse(todos).Todos
		}

		RenderPage(c, status, page)
		return
	}

	SendAction(c, status, body)
}

// actionFailure maps a submission error to its status and body. Internal
// detail never reaches the body.
func actionFailure(err error) (int, response.ActionResponse) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, response.Rejected(validationErr.Fields)
	case errors.Is(err, domain.ErrTodoNotFound):
		return http.StatusNotFound, response.Failed()
	default:
		return http.StatusBadRequest, response.Failed()
	}
}

func (t *TodoHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.HealthResponse{Status: "ok"})
}
