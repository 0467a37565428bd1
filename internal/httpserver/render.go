package httpserver

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"uom-eshop.org/storefront/internal/api"
	"uom-eshop.org/storefront/internal/format"
	"uom-eshop.org/storefront/internal/nav"
	"uom-eshop.org/storefront/internal/seo"
	"uom-eshop.org/storefront/internal/session"
	"uom-eshop.org/storefront/internal/status"
)

// View is the envelope every page template receives. Data carries the
// page-specific view model.
type View struct {
	Title      string
	Path       string
	State      session.State
	IsCustomer bool
	IsStore    bool
	Nav        []nav.RenderedItem
	CartCount  int
	Flash      string
	Error      string
	CSRF       string
	Data       any
}

// Renderer parses and executes the template set. In dev mode templates
// are reparsed per request so edits show up without a restart.
type Renderer struct {
	dir string
	dev bool

	mu    sync.RWMutex
	pages map[string]*template.Template
}

// NewRenderer parses the template tree under dir. Layout partials live
// in layout/, pages in pages/; each page is cloned onto the layout set
// so every page can define its own "content" block.
func NewRenderer(dir string, dev bool) (*Renderer, error) {
	r := &Renderer{dir: dir, dev: dev}
	if !dev {
		pages, err := parseTemplates(dir)
		if err != nil {
			return nil, err
		}
		r.pages = pages
	}
	return r, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"price":        format.Price,
		"date":         format.Date,
		"datetime":     format.DateTime,
		"plural":       format.Plural,
		"truncate":     format.Truncate,
		"orderBadge":   status.Order,
		"paymentBadge": status.Payment,
		"stockBadge":   status.Stock,
		"now":          time.Now,
		"productLD":    productLD,
		"storeLD":      storeLD,
	}
}

// productLD renders Product JSON-LD. The template.JS return keeps the
// script context from re-quoting the JSON.
func productLD(p api.Product) template.JS {
	return template.JS(seo.JSON(seo.Product(seo.ProductInfo{
		Title:       p.Title,
		Brand:       p.Brand,
		Description: p.Description,
		Price:       p.Price,
		InMarket:    p.InStock(),
		StoreName:   p.StoreName,
	})))
}

func storeLD(st api.Store) template.JS {
	return template.JS(seo.JSON(seo.Store(st.Name, st.Owner)))
}

// parseTemplates discovers layout partials and page templates. Note:
// ParseGlob doesn't support **, so the tree is walked explicitly.
func parseTemplates(dir string) (map[string]*template.Template, error) {
	var layouts, pages []string
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".tmpl") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if strings.HasPrefix(rel, "pages"+string(filepath.Separator)) {
			pages = append(pages, path)
		} else {
			layouts = append(layouts, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("httpserver: no layout templates under %s", dir)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("httpserver: no page templates under %s", dir)
	}

	base, err := template.New("_root").Funcs(templateFuncs()).ParseFiles(layouts...)
	if err != nil {
		return nil, err
	}

	set := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		t, err := clone.ParseFiles(page)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(page), ".tmpl")
		set[name] = t
	}
	return set, nil
}

func (r *Renderer) lookup(page string) (*template.Template, error) {
	if r.dev {
		pages, err := parseTemplates(r.dir)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.pages = pages
		r.mu.Unlock()
	}
	r.mu.RLock()
	t, ok := r.pages[page]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("httpserver: unknown page template %q", page)
	}
	return t, nil
}

// Render executes the named page within the base layout.
func (r *Renderer) Render(w http.ResponseWriter, statusCode int, page string, view View) error {
	t, err := r.lookup(page)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	return t.ExecuteTemplate(w, "base", view)
}
