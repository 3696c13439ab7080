package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	VariantUnordered = "unordered"
	VariantRecency   = "recency"
)

const (
	DefaultOutput     = "index.html"
	DefaultEntryFile  = "index.html"
	DefaultReadmeFile = "README.md"
	DefaultTruncate   = 80
)

var Variants = []string{VariantRecency, VariantUnordered}

func Default() Config {
	return Config{
		Output: DefaultOutput,
		Site: SiteConfig{
			Title:     "{ tools.amitgawande }",
			Subtitle:  "Simple, self-contained web tools",
			Author:    "Amit Gawande",
			AuthorURL: "https://amitgawande.com",
		},
		Catalog: CatalogConfig{
			EntryFile:  DefaultEntryFile,
			ReadmeFile: DefaultReadmeFile,
		},
		Render: RenderConfig{
			Variant: VariantRecency,
		},
	}
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Output) == "" {
		return errors.New("output must not be empty")
	}
	if filepath.IsAbs(cfg.Output) || strings.HasPrefix(filepath.Clean(cfg.Output), "..") {
		return fmt.Errorf("output %q must stay inside the root", cfg.Output)
	}
	for _, name := range []string{cfg.Catalog.EntryFile, cfg.Catalog.ReadmeFile} {
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, "/\\") {
			return fmt.Errorf("invalid marker file name %q", name)
		}
	}
	for _, pattern := range cfg.Catalog.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	switch cfg.Render.Variant {
	case VariantUnordered, VariantRecency:
	default:
		return fmt.Errorf("unknown render variant %q", cfg.Render.Variant)
	}
	if cfg.Render.TruncateLength() < 0 {
		return fmt.Errorf("truncate must be >= 0, got %d", cfg.Render.TruncateLength())
	}
	return nil
}
