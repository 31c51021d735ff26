package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// layoutFile is parsed into every page. Pages define "title" and "content".
const layoutFile = "layout.html"

// TemplateCache holds parsed templates
type TemplateCache struct {
	cache map[string]*template.Template
	mu    sync.RWMutex
	funcs template.FuncMap
}

func NewTemplateCache() *TemplateCache {
	return &TemplateCache{
		cache: make(map[string]*template.Template),
		funcs: defaultFuncs(),
	}
}

// Load parses every page in fsys/dir together with the layout. A nil fsys
// loads the embedded templates.
func (tc *TemplateCache) Load(fsys fs.FS, dir string) error {
	if fsys == nil {
		fsys, dir = templateFS, "templates"
	}
	tc.mu.Lock()
	defer tc.mu.Unlock()

	files, err := fs.Glob(fsys, path.Join(dir, "*.html"))
	if err != nil {
		return err
	}
	for _, file := range files {
		name := path.Base(file)
		if name == layoutFile {
			continue
		}
		tmpl, err := template.New(name).Funcs(tc.funcs).ParseFS(fsys, path.Join(dir, layoutFile), file)
		if err != nil {
			slog.Error("Failed to parse template", "file", file, "error", err)
			return fmt.Errorf("parse %s: %w", file, err)
		}
		tc.cache[name] = tmpl
		slog.Debug("Cached template", "name", name)
	}
	return nil
}

func (tc *TemplateCache) Get(name string) *template.Template {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.cache[name]
}

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return d.StringFixed(2)
		},
		"statuses": models.AllStatuses,
		// partID is 0 for orders without a part.
		"partID": func(o models.Order) int64 {
			if o.PartID == nil {
				return 0
			}
			return *o.PartID
		},
		"partName": func(parts map[int64]models.Part, o models.Order) string {
			if o.PartID == nil {
				return "-"
			}
			if p, ok := parts[*o.PartID]; ok {
				return p.Name
			}
			return fmt.Sprintf("#%d", *o.PartID)
		},
		"accountName": func(accounts map[int64]models.Account, id int64) string {
			if a, ok := accounts[id]; ok {
				return a.Username
			}
			return fmt.Sprintf("#%d", id)
		},
		// sortDir flips the direction for the column that is already sorted.
		"sortDir": func(column string, current models.OrderSortField, dir models.SortDirection) string {
			if models.ParseOrderSortField(column) == current && dir == models.Descending {
				return string(models.Ascending)
			}
			return string(models.Descending)
		},
		"lower": strings.ToLower,
	}
}
