package webui

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/cixicommerce/cixi-admin/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplates = []string{
	"login", "register", "home", "pricing", "kit_new", "kit_edit", "categories",
}

// PageData is the envelope every template receives.
type PageData struct {
	Title       string
	Path        string
	HideNav     bool
	LoggedIn    bool
	Ident       session.Identity
	IsAdmin     bool
	Alert       string
	FieldErrors map[string]string
	Toasts      []Flash
	Data        interface{}
}

type renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses each page template together with the shared layout.
func NewRenderer() (echo.Renderer, error) {
	pages := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		t, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, errors.Wrapf(err, "parse template %s", name)
		}
		pages[name] = t
	}
	return &renderer{pages: pages}, nil
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return errors.Errorf("unknown template %s", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
