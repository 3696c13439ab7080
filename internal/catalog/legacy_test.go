package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const listingReadme = `# Tools

## Available Tools

### JSON Viewer
**Path**: ` + "`/json-viewer/`" + `
**Description**: Pretty print JSON.
- **Updated**: 2024-01-10

### Timer
**Path**: timer

### No Path
**Description**: Orphan.

### Duplicate
**Path**: /timer/

## Contributing
### Not A Tool
**Path**: /nope/
`

func TestParseListing(t *testing.T) {
	entries := ParseListing(listingReadme)
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d: %#v", len(entries), entries)
	}
	first := entries[0]
	if first.Name != "JSON Viewer" || first.Path != "/json-viewer/" || first.Description != "Pretty print JSON." || first.Updated != "2024-01-10" {
		t.Fatalf("unexpected first entry: %#v", first)
	}
}

func TestScanListing(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte(listingReadme), 0o644); err != nil {
		t.Fatalf("write readme: %v", err)
	}

	result, err := ScanListing(root, "")
	if err != nil {
		t.Fatalf("scan listing: %v", err)
	}
	if got := slugs(result.Tools); len(got) != 2 || got[0] != "json-viewer" || got[1] != "timer" {
		t.Fatalf("unexpected tools: %v", got)
	}
	timer := result.Tools[1]
	if timer.Path != "timer" || timer.Description != DefaultDescription {
		t.Fatalf("unexpected timer record: %#v", timer)
	}
	if len(result.Skipped) != 2 || result.Skipped[0].Reason != SkipNoPath || result.Skipped[1].Reason != SkipDuplicate {
		t.Fatalf("unexpected skips: %#v", result.Skipped)
	}
}

func TestScanListingMissingReadme(t *testing.T) {
	_, err := ScanListing(t.TempDir(), "README.md")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestScanListingKeepsListedPaths(t *testing.T) {
	root := t.TempDir()
	readme := "## Available Tools\n" +
		"### JSON\n**Path**: `json/index.html`\n" +
		"### Remote\n**Path**: https://example.com/tool\n" +
		"### Viewer\n**Path**: /viewer/\n"
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte(readme), 0o644); err != nil {
		t.Fatalf("write readme: %v", err)
	}

	result, err := ScanListing(root, "README.md")
	if err != nil {
		t.Fatalf("scan listing: %v", err)
	}
	want := []struct{ slug, path string }{
		{"json", "json/index.html"},
		{"example.com/tool", "https://example.com/tool"},
		{"viewer", "/viewer/"},
	}
	if len(result.Tools) != len(want) {
		t.Fatalf("unexpected tools: %#v", result.Tools)
	}
	for i, w := range want {
		if result.Tools[i].Slug != w.slug || result.Tools[i].Path != w.path {
			t.Fatalf("tool %d: got slug %q path %q, want %q %q", i, result.Tools[i].Slug, result.Tools[i].Path, w.slug, w.path)
		}
	}
}
