// Package catalog discovers tool directories under a site root and extracts
// the metadata each one declares in its README.
package catalog

import "strings"

const (
	DefaultName        = "Unnamed Tool"
	DefaultCategory    = "Uncategorized"
	DefaultDescription = "No description"
)

// Metadata is what a README declares. Empty fields are absent.
type Metadata struct {
	Name        string
	Category    string
	Created     string
	Updated     string
	Description string
}

// Tool is one catalog entry with every default applied.
type Tool struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Slug        string `json:"slug" yaml:"slug" toml:"slug"`
	Path        string `json:"path" yaml:"path" toml:"path"`
	Category    string `json:"category" yaml:"category" toml:"category"`
	Created     string `json:"created,omitempty" yaml:"created,omitempty" toml:"created,omitempty"`
	Updated     string `json:"updated,omitempty" yaml:"updated,omitempty" toml:"updated,omitempty"`
	Description string `json:"description" yaml:"description" toml:"description"`
}

// Materialize turns parsed metadata into a Tool. Created and Updated stay
// empty when absent; every other field gets its default.
func Materialize(slug string, meta Metadata) Tool {
	return Tool{
		Name:        orDefault(meta.Name, DefaultName),
		Slug:        slug,
		Path:        PathFor(slug),
		Category:    orDefault(meta.Category, DefaultCategory),
		Created:     strings.TrimSpace(meta.Created),
		Updated:     strings.TrimSpace(meta.Updated),
		Description: orDefault(meta.Description, DefaultDescription),
	}
}

func PathFor(slug string) string {
	return "/" + slug + "/"
}

// fill copies fields from fallback into m where m has none.
func (m Metadata) fill(fallback Metadata) Metadata {
	out := m
	if out.Name == "" {
		out.Name = strings.TrimSpace(fallback.Name)
	}
	if out.Category == "" {
		out.Category = strings.TrimSpace(fallback.Category)
	}
	if out.Created == "" {
		out.Created = strings.TrimSpace(fallback.Created)
	}
	if out.Updated == "" {
		out.Updated = strings.TrimSpace(fallback.Updated)
	}
	if out.Description == "" {
		out.Description = strings.TrimSpace(fallback.Description)
	}
	return out
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
