package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const FileName = "toolindex.toml"

type File struct {
	Path   string
	Dir    string
	Config Config
}

type Config struct {
	Output  string        `toml:"output"`
	Site    SiteConfig    `toml:"site"`
	Catalog CatalogConfig `toml:"catalog"`
	Render  RenderConfig  `toml:"render"`
}

type SiteConfig struct {
	Title     string `toml:"title"`
	Subtitle  string `toml:"subtitle"`
	Author    string `toml:"author"`
	AuthorURL string `toml:"author_url"`
}

type CatalogConfig struct {
	EntryFile  string   `toml:"entry_file"`
	ReadmeFile string   `toml:"readme_file"`
	Exclude    []string `toml:"exclude"`
	Legacy     *bool    `toml:"legacy"`
	Gitignore  *bool    `toml:"gitignore"`
}

type RenderConfig struct {
	Variant  string `toml:"variant"`
	Truncate *int   `toml:"truncate"`
}

func (c CatalogConfig) LegacyEnabled() bool {
	return c.Legacy != nil && *c.Legacy
}

func (c CatalogConfig) GitignoreEnabled() bool {
	return c.Gitignore == nil || *c.Gitignore
}

func (r RenderConfig) TruncateLength() int {
	if r.Truncate == nil {
		return DefaultTruncate
	}
	return *r.Truncate
}

// Load reads toolindex.toml from root and layers it over Default. A missing
// file is not an error.
func Load(root string) (Config, error) {
	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, err
	}
	file, err := ParseFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Merge(Default(), file.Config)
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", file.Path, err)
	}
	return cfg, nil
}

func ParseFile(path string) (File, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	var cfg Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		return File{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return File{}, err
	}
	return File{
		Path:   absPath,
		Dir:    filepath.Dir(absPath),
		Config: cfg,
	}, nil
}

// SplitTomlFrontmatter separates a leading +++ block from the rest of the
// document.
func SplitTomlFrontmatter(contents string) (frontmatter string, body string, hasFrontmatter bool, err error) {
	return splitFrontmatter(contents, "+++")
}

// SplitYAMLFrontmatter separates a leading --- block from the rest of the
// document.
func SplitYAMLFrontmatter(contents string) (frontmatter string, body string, hasFrontmatter bool, err error) {
	return splitFrontmatter(contents, "---")
}

func splitFrontmatter(contents, fence string) (string, string, bool, error) {
	lines := strings.Split(contents, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != fence {
		return "", contents, false, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == fence {
			end = i
			break
		}
	}
	if end == -1 {
		return "", "", false, errors.New("frontmatter start found but no closing " + fence)
	}
	frontmatter := strings.Join(lines[1:end], "\n")
	body := strings.Join(lines[end+1:], "\n")
	return frontmatter, body, true, nil
}
