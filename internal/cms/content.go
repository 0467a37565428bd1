package cms

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

// Page is a static marketing page sourced from local markdown.
type Page struct {
	Slug      string
	Title     string
	Summary   string
	Body      string
	HTML      template.HTML
	UpdatedAt time.Time
}

// ErrNotFound indicates the requested page does not exist.
var ErrNotFound = errors.New("cms: page not found")

const (
	defaultContentDir = "content"
	defaultCacheTTL   = 5 * time.Minute
)

type cachedPage struct {
	page    Page
	expires time.Time
}

// Library loads and renders markdown pages from a content directory.
// Rendered pages are cached for a short TTL so edits show up without a restart.
type Library struct {
	dir    string
	ttl    time.Duration
	md     goldmark.Markdown
	policy *bluemonday.Policy

	mu    sync.RWMutex
	cache map[string]cachedPage
}

// Option customises Library construction.
type Option func(*Library)

// WithDir overrides the content directory.
func WithDir(dir string) Option {
	return func(l *Library) {
		if strings.TrimSpace(dir) != "" {
			l.dir = dir
		}
	}
}

// WithCacheTTL overrides how long rendered pages are cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(l *Library) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

// NewLibrary builds a Library rooted at the default content directory.
func NewLibrary(opts ...Option) *Library {
	l := &Library{
		dir: defaultContentDir,
		ttl: defaultCacheTTL,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(htmlrenderer.WithHardWraps()),
		),
		policy: newContentPolicy(),
		cache:  map[string]cachedPage{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func newContentPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Page returns the rendered page for slug, loading and caching it as needed.
func (l *Library) Page(slug string) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}

	l.mu.RLock()
	entry, ok := l.cache[slug]
	l.mu.RUnlock()
	if ok && time.Now().Before(entry.expires) {
		return entry.page, nil
	}

	page, err := l.load(slug)
	if err != nil {
		return Page{}, err
	}

	l.mu.Lock()
	l.cache[slug] = cachedPage{page: page, expires: time.Now().Add(l.ttl)}
	l.mu.Unlock()
	return page, nil
}

func (l *Library) load(slug string) (Page, error) {
	file := filepath.Join(l.dir, slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, err
	}

	fm, body := splitFrontMatter(string(data))
	var front struct {
		Title     string `yaml:"title"`
		Summary   string `yaml:"summary"`
		UpdatedAt string `yaml:"updated_at"`
	}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}

	var buf bytes.Buffer
	if err := l.md.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("cms: render %s: %w", file, err)
	}
	safe := l.policy.SanitizeBytes(buf.Bytes())

	page := Page{
		Slug:    slug,
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		Body:    body,
		HTML:    template.HTML(safe),
	}
	page.UpdatedAt = parseContentDate(front.UpdatedAt)
	if page.UpdatedAt.IsZero() {
		if info, statErr := os.Stat(file); statErr == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

func sanitizeSlug(slug string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return ""
	}
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return ""
		}
	}
	return slug
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\uFEFF")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		if runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] -= 'a' - 'A'
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
