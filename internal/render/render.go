// Package render turns catalog tools into the HTML landing page.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/amitgawande/tools/internal/catalog"
	"github.com/amitgawande/tools/internal/config"
)

const (
	TimestampLayout = "2006-01-02 15:04:05"
	timestampPrefix = "Generated on "
	// footerPrefix opens the footer timestamp line. Escaping keeps tool text
	// from ever producing it.
	footerPrefix = `<p class="generated">` + timestampPrefix
	ellipsis        = "..."
	// missingUpdated stands in for an absent Updated date when ordering.
	missingUpdated = "0000-00-00"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

var page = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

type Options struct {
	Variant   string
	Title     string
	Subtitle  string
	Author    string
	AuthorURL string
	// Truncate caps pill descriptions in runes. Zero disables it.
	Truncate int
	Now      time.Time
}

func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Variant:   cfg.Render.Variant,
		Title:     cfg.Site.Title,
		Subtitle:  cfg.Site.Subtitle,
		Author:    cfg.Site.Author,
		AuthorURL: cfg.Site.AuthorURL,
		Truncate:  cfg.Render.TruncateLength(),
	}
}

type entry struct {
	Name        string
	Path        string
	Category    string
	Updated     string
	Description string
}

type pageData struct {
	PageTitle   string
	Title       string
	Subtitle    string
	Author      string
	AuthorURL   string
	GeneratedAt string
	Pills       bool
	Entries     []entry
}

// Render writes the full document for tools to w.
func Render(w io.Writer, tools []catalog.Tool, opts Options) error {
	pills := opts.Variant == config.VariantRecency
	ordered := Order(tools, opts.Variant)

	entries := make([]entry, 0, len(ordered))
	for _, tool := range ordered {
		description := tool.Description
		if pills {
			description = Truncate(description, opts.Truncate)
		}
		entries = append(entries, entry{
			Name:        tool.Name,
			Path:        tool.Path,
			Category:    tool.Category,
			Updated:     tool.Updated,
			Description: description,
		})
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	data := pageData{
		PageTitle:   pageTitle(opts.Author),
		Title:       opts.Title,
		Subtitle:    opts.Subtitle,
		Author:      opts.Author,
		AuthorURL:   opts.AuthorURL,
		GeneratedAt: now.Format(TimestampLayout),
		Pills:       pills,
		Entries:     entries,
	}
	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// Document renders tools into a string.
func Document(tools []catalog.Tool, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, tools, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Order returns tools in display order for variant without touching the
// input. The recency variant sorts by Updated, newest first, and keeps
// scanner order among equal dates.
func Order(tools []catalog.Tool, variant string) []catalog.Tool {
	out := append([]catalog.Tool(nil), tools...)
	if variant != config.VariantRecency {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return sortKey(out[i]) > sortKey(out[j])
	})
	return out
}

func sortKey(tool catalog.Tool) string {
	if tool.Updated == "" {
		return missingUpdated
	}
	return tool.Updated
}

// Truncate shortens value to max runes and appends an ellipsis when it had
// to cut.
func Truncate(value string, max int) string {
	if max <= 0 || utf8.RuneCountInString(value) <= max {
		return value
	}
	runes := []rune(value)
	return strings.TrimRight(string(runes[:max]), " ") + ellipsis
}

// StripTimestamp removes the footer timestamp line so two documents can be
// compared.
func StripTimestamp(doc string) string {
	lines := strings.Split(doc, "\n")
	out := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), footerPrefix) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func pageTitle(author string) string {
	if strings.TrimSpace(author) == "" {
		return "Tools"
	}
	return "Tools | " + author
}
