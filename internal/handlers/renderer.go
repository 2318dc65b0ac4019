package handlers

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/gin-gonic/gin/render"
)

// TemplateFuncs are available inside every page template.
var TemplateFuncs = template.FuncMap{
	"money": func(amount float64) string {
		return fmt.Sprintf("%.2f €", amount)
	},
	"join": strings.Join,
	"add":  func(a, b int) int { return a + b },
	"sub":  func(a, b int) int { return a - b },
}

// HTMLRenderer serves one template set per page so every page can pair
// its own content block with the shared base layout.
type HTMLRenderer struct {
	Templates map[string]*template.Template
}

// Instance selects the template set for a page render.
func (r *HTMLRenderer) Instance(name string, data interface{}) render.Render {
	return render.HTML{
		Template: r.Templates[name],
		Name:     "base.html",
		Data:     data,
	}
}
