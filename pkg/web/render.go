package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	layoutFile   = "templates/base.html"
	partialsFile = "templates/partials.html"
)

var funcs = template.FuncMap{
	"pageQuery": pageQuery,
	"hasID":     hasID,
}

// pageQuery builds the query string of a page link, carrying the search token.
func pageQuery(param, search string, page int) string {
	v := url.Values{}
	if search != "" {
		v.Set(param, search)
	}
	v.Set("page", strconv.Itoa(page))
	return "?" + v.Encode()
}

func hasID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// htmlRender gives every page its own template set so pages can each define
// "content" on top of the shared layout.
type htmlRender struct {
	pages map[string]*template.Template
}

func loadTemplates() (*htmlRender, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile || file == partialsFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layoutFile, partialsFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[name] = t
	}
	return &htmlRender{pages: pages}, nil
}

func (r *htmlRender) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		panic("web: unknown template " + name)
	}
	return render.HTML{Template: t, Name: "base", Data: data}
}
