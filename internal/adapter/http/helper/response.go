package helper

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/romansndlr/remix-todos/internal/adapter/http/view"
	"github.com/romansndlr/remix-todos/internal/core/model/response"
)

// WantsHTML reports whether the client prefers the rendered page over JSON.
// Clients without an Accept header get JSON.
func WantsHTML(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML
}

func SendError(c *gin.Context, statusCode int, code string, errors []response.ValidationError, details ...any) {
	errorResponse := response.ErrorResponse{
		Error: response.ResponseError{
			Code:   code,
			Errors: errors,
		},
	}

	if len(details) > 0 {
		errorResponse.Error.Details = details[0]
	}

	c.JSON(statusCode, errorResponse)
}

func SendInternalError(c *gin.Context, message string, details ...any) {
	errors := []response.ValidationError{
		{
			Field:   "server",
			Message: message,
		},
	}

	SendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", errors, details...)
}

func SendAction(c *gin.Context, statusCode int, body response.ActionResponse) {
	c.JSON(statusCode, body)
}

func RenderPage(c *gin.Context, statusCode int, page view.Page) {
	if page.Todos == nil {
		page.Todos = []response.TodoResponse{}
	}

	if page.Errors == nil {
		page.Errors = map[string][]string{}
	}

	c.HTML(statusCode, view.IndexTemplate, page)
}
