package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/amitgawande/tools/internal/catalog"
	"github.com/amitgawande/tools/internal/config"
	"github.com/amitgawande/tools/internal/render"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

type ListOptions struct {
	Config   config.Config
	Format   string
	Out      io.Writer
	Reporter Reporter
}

type listing struct {
	Tools []catalog.Tool `json:"tools" yaml:"tools" toml:"tools"`
}

// List prints the catalog in display order.
func List(root string, opts ListOptions) error {
	reporter := ensureReporter(opts.Reporter)
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	result, err := loadCatalog(root, opts.Config, quietReporter{reporter}, false)
	if err != nil {
		return err
	}
	tools := render.Order(result.Tools, opts.Config.Render.Variant)
	if tools == nil {
		tools = []catalog.Tool{}
	}

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", FormatText:
		return writeTable(out, tools)
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(listing{Tools: tools})
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(listing{Tools: tools}); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(out).Encode(listing{Tools: tools})
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
}

func writeTable(out io.Writer, tools []catalog.Tool) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tNAME\tCATEGORY\tUPDATED")
	for _, tool := range tools {
		updated := tool.Updated
		if updated == "" {
			updated = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tool.Slug, tool.Name, tool.Category, updated)
	}
	return w.Flush()
}

// quietReporter keeps warnings and drops progress chatter so machine
// readable output stays clean.
type quietReporter struct {
	Reporter
}

func (q quietReporter) Info(string) {}

func (q quietReporter) Progress(string, int) ProgressReporter { return noopProgress{} }
