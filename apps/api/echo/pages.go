package echoapi

import (
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/studentlogs/core"
	appfs "github.com/trezcool/studentlogs/fs"
)

const errorTemplate = "error.gohtml"

type templateRenderer struct {
	templates *template.Template
}

var _ echo.Renderer = (*templateRenderer)(nil)

func newTemplateRenderer() *templateRenderer {
	return &templateRenderer{
		templates: template.Must(template.ParseFS(appfs.FS, "templates/*.gohtml")),
	}
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// errorPage renders the page every failure is redirected to.
func errorPage(ctx echo.Context) error {
	msg := core.CleanString(ctx.QueryParam("message"))
	if msg == "" {
		msg = msgUnknownPageError
	}
	return ctx.Render(http.StatusInternalServerError, errorTemplate, echo.Map{"Message": msg})
}
