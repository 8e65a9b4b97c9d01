package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"
)

// TemplateRenderer renders named pages.
type TemplateRenderer interface {
	RenderHTTP(w http.ResponseWriter, name string, data interface{})
}

// Renderer manages template parsing and rendering with isolated template sets.
// Every page uses the "public" layout.
//
// Templates are organized as:
//   - layouts/public.html - base layout
//   - components/*.html - reusable components (sections of the page)
//   - partials/*.html - fragments included by the layout (the toast)
//   - pages/*.html - pages, each defining a "content" block
type Renderer struct {
	templates map[string]*template.Template
	funcs     template.FuncMap
	logger    *slog.Logger
	isDev     bool
	mu        sync.RWMutex

	fsys fs.FS
	// For dev mode hot-reload
	templatesDir string
}

// RendererConfig holds configuration for the renderer.
type RendererConfig struct {
	// FS holds the templates (normally the embedded web.Templates).
	FS fs.FS
	// TemplatesDir, when set in dev mode, is read from disk on every render
	// instead of FS.
	TemplatesDir string
	Funcs        template.FuncMap
	Logger       *slog.Logger
	IsDev        bool
}

// NewRenderer creates a new template renderer.
func NewRenderer(cfg RendererConfig) (*Renderer, error) {
	r := &Renderer{
		templates:    make(map[string]*template.Template),
		funcs:        cfg.Funcs,
		logger:       cfg.Logger,
		isDev:        cfg.IsDev && cfg.TemplatesDir != "",
		fsys:         cfg.FS,
		templatesDir: cfg.TemplatesDir,
	}
	if r.isDev {
		r.fsys = os.DirFS(cfg.TemplatesDir)
	}
	if r.fsys == nil {
		return nil, fmt.Errorf("renderer: no template filesystem configured")
	}

	if err := r.loadTemplates(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Renderer) loadTemplates() error {
	fsys := r.fsys

	// Get component templates (shared by every page) - recursively from all subdirs
	var componentFiles []string
	err := fs.WalkDir(fsys, "components", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".html") {
			componentFiles = append(componentFiles, p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk components dir: %w", err)
	}

	partialFiles, err := fs.Glob(fsys, "partials/*.html")
	if err != nil {
		return fmt.Errorf("failed to glob partials: %w", err)
	}

	// Parse public layout
	publicBaseTmpl, err := template.New("public").Funcs(r.funcs).ParseFS(fsys, "layouts/public.html")
	if err != nil {
		return fmt.Errorf("failed to parse public layout: %w", err)
	}

	// Parse components into public layout
	if len(componentFiles) > 0 {
		publicBaseTmpl, err = publicBaseTmpl.ParseFS(fsys, componentFiles...)
		if err != nil {
			return fmt.Errorf("failed to parse components into public layout: %w", err)
		}
	}

	// Parse partials into public layout (so it can use {{template "toast"}})
	if len(partialFiles) > 0 {
		publicBaseTmpl, err = publicBaseTmpl.ParseFS(fsys, partialFiles...)
		if err != nil {
			return fmt.Errorf("failed to parse partials into public layout: %w", err)
		}
	}

	pages, err := fs.Glob(fsys, "pages/*.html")
	if err != nil {
		return fmt.Errorf("failed to glob pages: %w", err)
	}

	for _, page := range pages {
		pageTmpl, err := publicBaseTmpl.Clone()
		if err != nil {
			return fmt.Errorf("failed to clone public template for %s: %w", page, err)
		}

		pageTmpl, err = pageTmpl.ParseFS(fsys, page)
		if err != nil {
			return fmt.Errorf("failed to parse page %s: %w", page, err)
		}

		// Store as "home", etc.
		r.templates[baseName(page)] = pageTmpl
	}

	r.logger.Info("templates loaded", "count", len(r.templates))
	return nil
}

// Reload reloads all templates. Useful for development.
func (r *Renderer) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.templates = make(map[string]*template.Template)
	return r.loadTemplates()
}

// Render renders a template to an io.Writer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}) error {
	// In dev mode, reload templates on each request
	if r.isDev {
		if err := r.Reload(); err != nil {
			return fmt.Errorf("template reload failed: %w", err)
		}
	}

	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	return tmpl.ExecuteTemplate(w, "public", data)
}

// RenderHTTP renders a template directly to an http.ResponseWriter.
func (r *Renderer) RenderHTTP(w http.ResponseWriter, name string, data interface{}) {
	// Render to buffer first to catch errors before writing headers
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		r.logger.Error("template execution failed", "name", name, "error", err)
		http.Error(w, "Template execution failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// ListTemplates returns a list of all loaded template names.
// Useful for debugging.
func (r *Renderer) ListTemplates() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	return names
}

func baseName(p string) string {
	return strings.TrimSuffix(path.Base(p), path.Ext(p))
}
