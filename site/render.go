package site

import (
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/gin-contrib/multitemplate"

	"github.com/flarexio/technozen/admission"
)

const (
	Layout   = "layouts/default.html"
	Partials = "partials/*.html"
)

var funcs = template.FuncMap{
	"centerName":     func() string { return admission.CenterName },
	"qualifications": func() []string { return admission.Qualifications },
	"courses":        func() []string { return admission.Courses },
	"subCourses":     func() []string { return admission.SubCourses },
	"occupations":    func() []string { return admission.Occupations },
	"last": func(i int, crumbs []Crumb) bool {
		return i == len(crumbs)-1
	},
	"upper": strings.ToUpper,
}

// NewRenderer parses every page in fsys into its own set made of the
// default layout, the shared partials and the page's content block.
func NewRenderer(fsys fs.FS) (multitemplate.Render, error) {
	r := multitemplate.New()

	for _, p := range Pages {
		name := "pages/" + p.Name + ".html"

		tmpl, err := template.New("default.html").
			Funcs(funcs).
			ParseFS(fsys, Layout, Partials, name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", p.Name, err)
		}

		r.Add(p.Name, tmpl)
	}

	return r, nil
}
