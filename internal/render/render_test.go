package render

import (
	"strings"
	"testing"
	"time"

	"github.com/amitgawande/tools/internal/catalog"
	"github.com/amitgawande/tools/internal/config"
)

func testOptions(variant string) Options {
	opts := OptionsFromConfig(config.Default())
	opts.Variant = variant
	opts.Now = time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC)
	return opts
}

func TestOrderRecencyPutsMissingDatesLast(t *testing.T) {
	tools := []catalog.Tool{
		catalog.Materialize("a", catalog.Metadata{Updated: "2023-01-01"}),
		catalog.Materialize("b", catalog.Metadata{}),
		catalog.Materialize("c", catalog.Metadata{Updated: "2024-06-01"}),
	}

	ordered := Order(tools, config.VariantRecency)
	got := []string{ordered[0].Slug, ordered[1].Slug, ordered[2].Slug}
	if got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Fatalf("unexpected order: %v", got)
	}
	if tools[0].Slug != "a" || tools[1].Updated != "" {
		t.Fatalf("input must not be mutated: %#v", tools)
	}

	unordered := Order(tools, config.VariantUnordered)
	if unordered[0].Slug != "a" || unordered[2].Slug != "c" {
		t.Fatalf("unordered variant must keep scanner order: %#v", unordered)
	}
}

func TestOrderRecencyIsStable(t *testing.T) {
	tools := []catalog.Tool{
		catalog.Materialize("first", catalog.Metadata{Updated: "2024-01-01"}),
		catalog.Materialize("second", catalog.Metadata{Updated: "2024-01-01"}),
		catalog.Materialize("third", catalog.Metadata{}),
		catalog.Materialize("fourth", catalog.Metadata{}),
	}
	ordered := Order(tools, config.VariantRecency)
	for i, want := range []string{"first", "second", "third", "fourth"} {
		if ordered[i].Slug != want {
			t.Fatalf("position %d: got %s, want %s", i, ordered[i].Slug, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		value string
		max   int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer sentence", 8, "a longer..."},
		{"trailing space cut", 9, "trailing..."},
		{"héllo wörld", 5, "héllo..."},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.value, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.value, tt.max, got, tt.want)
		}
	}
}

func TestRenderEscapesInterpolatedText(t *testing.T) {
	tools := []catalog.Tool{
		catalog.Materialize("xss", catalog.Metadata{
			Name:        "<script>alert(1)</script>",
			Category:    "A & B",
			Description: `Says "hi" <b>loudly</b>`,
		}),
	}
	for _, variant := range config.Variants {
		doc, err := Document(tools, testOptions(variant))
		if err != nil {
			t.Fatalf("%s: render: %v", variant, err)
		}
		if strings.Contains(doc, "<script>alert") || strings.Contains(doc, "<b>loudly") {
			t.Fatalf("%s: interpolated text was not escaped:\n%s", variant, doc)
		}
		if !strings.Contains(doc, "&lt;script&gt;") || !strings.Contains(doc, "A &amp; B") {
			t.Fatalf("%s: expected escaped entities:\n%s", variant, doc)
		}
	}
}

func TestRenderCardsShowFullEntries(t *testing.T) {
	long := strings.Repeat("word ", 30)
	tools := []catalog.Tool{
		catalog.Materialize("json-viewer", catalog.Metadata{Name: "JSON Viewer", Updated: "2024-03-01", Description: long}),
	}
	doc, err := Document(tools, testOptions(config.VariantUnordered))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`<h2>JSON Viewer</h2>`,
		`href="/json-viewer/"`,
		`Updated 2024-03-01`,
		`<span class="badge">Uncategorized</span>`,
		strings.TrimSpace(long),
		`Generated on 2024-07-01 09:30:00`,
		`href="https://amitgawande.com"`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("expected %q in document:\n%s", want, doc)
		}
	}
}

func TestRenderPillsTruncateDescriptions(t *testing.T) {
	long := strings.Repeat("x", 120)
	tools := []catalog.Tool{catalog.Materialize("long", catalog.Metadata{Description: long})}
	doc, err := Document(tools, testOptions(config.VariantRecency))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(doc, strings.Repeat("x", 80)+"...") || strings.Contains(doc, strings.Repeat("x", 81)) {
		t.Fatalf("expected description truncated to 80 runes:\n%s", doc)
	}
	if !strings.Contains(doc, `class="tool-pill" href="/long/"`) {
		t.Fatalf("expected pill layout:\n%s", doc)
	}
}

func TestRenderIsIdempotentApartFromTimestamp(t *testing.T) {
	tools := []catalog.Tool{
		catalog.Materialize("a", catalog.Metadata{Name: "A", Updated: "2024-01-01"}),
		catalog.Materialize("b", catalog.Metadata{Name: "B"}),
	}
	first := testOptions(config.VariantRecency)
	second := first
	second.Now = first.Now.Add(36 * time.Hour)

	one, err := Document(tools, first)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	two, err := Document(tools, second)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if one == two {
		t.Fatalf("expected timestamps to differ")
	}
	if StripTimestamp(one) != StripTimestamp(two) {
		t.Fatalf("documents differ beyond the timestamp line")
	}
}

func TestStripTimestampOnlyDropsFooter(t *testing.T) {
	tools := []catalog.Tool{
		catalog.Materialize("report", catalog.Metadata{Name: "Report", Description: "Generated on demand from CSV"}),
	}
	doc, err := Document(tools, testOptions(config.VariantUnordered))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	stripped := StripTimestamp(doc)
	if !strings.Contains(stripped, "Generated on demand from CSV") {
		t.Fatalf("description was stripped with the timestamp:\n%s", stripped)
	}
	if strings.Contains(stripped, "2024-07-01 09:30:00") {
		t.Fatalf("footer timestamp survived:\n%s", stripped)
	}
}
