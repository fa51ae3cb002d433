package view

import (
	"embed"
	"html/template"
	"strings"

	"github.com/romansndlr/remix-todos/internal/core/model/response"
)

//go:embed templates/*.html
var templatesFS embed.FS

const IndexTemplate = "index.html"

// Page is the data rendered by the index template.
type Page struct {
	Todos  []response.TodoResponse
	Errors map[string][]string
	Failed bool
}

// Templates parses the embedded templates. It panics on a malformed template
// since they are compiled into the binary.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseFS(templatesFS, "templates/*.html"))
}
