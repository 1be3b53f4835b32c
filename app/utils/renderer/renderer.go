package renderer

import (
	"github.com/unrolled/render"
)

// New returns the JSON renderer shared by handlers and middlewares.
func New(production bool) *render.Render {
	return render.New(render.Options{
		IndentJSON:   !production,
		UnEscapeHTML: true,
		Charset:      "UTF-8",
	})
}
