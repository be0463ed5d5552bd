package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"refugee.info/greece-web/internal/format"
	"refugee.info/greece-web/internal/observability"
)

// views holds one template set per page: the base layout, the partials and
// the page's own file. In dev mode every render reparses from disk.
type views struct {
	dir    string
	dev    bool
	policy *bluemonday.Policy

	mu    sync.RWMutex
	pages map[string]*template.Template
}

func newViews(dir string, dev bool) (*views, error) {
	v := &views{dir: dir, dev: dev, policy: newPolicy()}
	sets, err := v.parse()
	if err != nil {
		return nil, err
	}
	v.pages = sets
	return v, nil
}

// newPolicy allows the markup help center articles use, including the
// embedded video iframes.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).Globally()
	p.AllowAttrs("src", "width", "height", "allowfullscreen", "frameborder", "title").OnElements("iframe")
	p.AllowURLSchemes("https", "mailto", "tel")
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

func (v *views) funcs() template.FuncMap {
	return template.FuncMap{
		"now":     time.Now,
		"fmtDate": format.FmtDate,
		"isoDate": format.ISODate,
		"sanitize": func(s string) template.HTML {
			return template.HTML(v.policy.Sanitize(s))
		},
		"jsonld": func(s string) template.JS {
			return template.JS(s)
		},
		"join": strings.Join,
	}
}

func (v *views) parse() (map[string]*template.Template, error) {
	shared, err := templateFiles(filepath.Join(v.dir, "layouts"), filepath.Join(v.dir, "partials"))
	if err != nil {
		return nil, err
	}
	if len(shared) == 0 {
		return nil, fmt.Errorf("no layout templates found under %s", v.dir)
	}
	pageFiles, err := templateFiles(filepath.Join(v.dir, "pages"))
	if err != nil {
		return nil, err
	}
	if len(pageFiles) == 0 {
		return nil, fmt.Errorf("no page templates found under %s", v.dir)
	}

	sets := make(map[string]*template.Template, len(pageFiles))
	for _, page := range pageFiles {
		name := strings.TrimSuffix(filepath.Base(page), ".tmpl")
		files := append(append([]string{}, shared...), page)
		t, err := template.New(name).Funcs(v.funcs()).ParseFiles(files...)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		sets[name] = t
	}
	return sets, nil
}

// templateFiles recursively lists .tmpl files. Missing directories are skipped.
func templateFiles(dirs ...string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func (v *views) lookup(page string) (*template.Template, error) {
	if v.dev {
		sets, err := v.parse()
		if err != nil {
			return nil, err
		}
		v.mu.Lock()
		v.pages = sets
		v.mu.Unlock()
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	t, ok := v.pages[page]
	if !ok {
		return nil, fmt.Errorf("template %q not found", page)
	}
	return t, nil
}

// renderPage executes the base layout of page.
func (v *views) renderPage(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	v.execute(w, r, status, page, "base", data)
}

// renderTemplate executes a single named template of page's set, used for htmx fragments.
func (v *views) renderTemplate(w http.ResponseWriter, r *http.Request, status int, page, name string, data any) {
	v.execute(w, r, status, page, name, data)
}

func (v *views) execute(w http.ResponseWriter, r *http.Request, status int, page, name string, data any) {
	logger := observability.FromContext(r.Context())
	t, err := v.lookup(page)
	if err != nil {
		logger.Error("template lookup failed", zap.String("template", page), zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		logger.Error("template exec failed", zap.String("template", page), zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
