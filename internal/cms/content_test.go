package cms

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestPageRendersMarkdownWithFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "about.md", strings.Join([]string{
		"---",
		"title: About the Marketplace",
		"summary: Who we are",
		"updated_at: 2026-03-01",
		"---",
		"",
		"## Our story",
		"",
		"We connect **local stores** with shoppers.",
	}, "\n"))

	lib := NewLibrary(WithDir(dir))
	page, err := lib.Page("about")
	require.NoError(t, err)

	assert.Equal(t, "about", page.Slug)
	assert.Equal(t, "About the Marketplace", page.Title)
	assert.Equal(t, "Who we are", page.Summary)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), page.UpdatedAt)
	assert.Contains(t, string(page.HTML), "<h2")
	assert.Contains(t, string(page.HTML), "<strong>local stores</strong>")
}

func TestPageStripsLeadingByteOrderMark(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "welcome.md", "\uFEFF---\ntitle: Welcome\n---\n\nHello shoppers.")

	lib := NewLibrary(WithDir(dir))
	page, err := lib.Page("welcome")
	require.NoError(t, err)
	assert.Equal(t, "Welcome", page.Title)
	assert.Contains(t, string(page.HTML), "Hello shoppers.")
}

func TestPageSanitizesScriptTags(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "promo.md", "Hello <script>alert(1)</script> world")

	lib := NewLibrary(WithDir(dir))
	page, err := lib.Page("promo")
	require.NoError(t, err)
	assert.NotContains(t, string(page.HTML), "<script")
	assert.Contains(t, string(page.HTML), "Hello")
}

func TestPageTitleFallsBackToSlug(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "shipping-policy.md", "Free shipping over fifty euros.")

	lib := NewLibrary(WithDir(dir))
	page, err := lib.Page("shipping-policy")
	require.NoError(t, err)
	assert.Equal(t, "Shipping Policy", page.Title)
	assert.False(t, page.UpdatedAt.IsZero())
}

func TestPageMissingAndBadSlugs(t *testing.T) {
	lib := NewLibrary(WithDir(t.TempDir()))

	_, err := lib.Page("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = lib.Page("../etc/passwd")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = lib.Page("")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPageCachesUntilTTL(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "about.md", "first version")

	lib := NewLibrary(WithDir(dir), WithCacheTTL(time.Hour))
	first, err := lib.Page("about")
	require.NoError(t, err)
	assert.Contains(t, string(first.HTML), "first version")

	writePage(t, dir, "about.md", "second version")
	again, err := lib.Page("about")
	require.NoError(t, err)
	assert.Contains(t, string(again.HTML), "first version", "cached copy should survive file edits inside the TTL")
}
