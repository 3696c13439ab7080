package checks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amitgawande/tools/internal/catalog"
)

func rules(issues []Issue) map[string]Severity {
	out := map[string]Severity{}
	for _, issue := range issues {
		out[issue.Rule] = issue.Severity
	}
	return out
}

func TestLintCompleteMetadata(t *testing.T) {
	issues := Lint("ok", catalog.Metadata{
		Name:        "OK",
		Category:    "Dev",
		Created:     "2023-01-01",
		Updated:     "2024-01-01",
		Description: "Fine.",
	})
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %#v", issues)
	}
}

func TestLintReportsMissingAndMalformedFields(t *testing.T) {
	tests := []struct {
		name string
		meta catalog.Metadata
		want map[string]Severity
	}{
		{
			name: "empty readme",
			meta: catalog.Metadata{},
			want: map[string]Severity{
				RuleName:        SeverityWarning,
				RuleCategory:    SeverityWarning,
				RuleDescription: SeverityWarning,
			},
		},
		{
			name: "bad date",
			meta: catalog.Metadata{Name: "N", Category: "C", Description: "D", Updated: "2024-3-1"},
			want: map[string]Severity{RuleDateFormat: SeverityError},
		},
		{
			name: "dates out of order",
			meta: catalog.Metadata{Name: "N", Category: "C", Description: "D", Created: "2024-05-01", Updated: "2024-04-30"},
			want: map[string]Severity{RuleDateOrder: SeverityError},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules(Lint("tool", tt.meta))
			if len(got) != len(tt.want) {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
			for rule, severity := range tt.want {
				if got[rule] != severity {
					t.Fatalf("rule %s: got %q, want %q", rule, got[rule], severity)
				}
			}
		})
	}
}

func TestCheckerReadsReadmes(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.md")
	bad := filepath.Join(dir, "bad.md")
	if err := os.WriteFile(good, []byte("# Good\n## Metadata\n**Category**: X\n## Description\nText\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(bad, []byte("+++\nname = \n+++\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	issues := Checker{}.Check([]catalog.Candidate{
		{Slug: "good", ReadmePath: good},
		{Slug: "bad", ReadmePath: bad},
		{Slug: "gone", ReadmePath: filepath.Join(dir, "missing.md")},
	})
	bySlug := map[string][]Issue{}
	for _, issue := range issues {
		bySlug[issue.Slug] = append(bySlug[issue.Slug], issue)
	}
	if len(bySlug["good"]) != 0 {
		t.Fatalf("expected no issues for good, got %#v", bySlug["good"])
	}
	if rules(bySlug["bad"])[RuleFrontmatter] != SeverityError {
		t.Fatalf("expected frontmatter error for bad, got %#v", bySlug["bad"])
	}
	if got := bySlug["gone"]; len(got) != 1 || got[0].Rule != RuleUnreadable {
		t.Fatalf("expected unreadable issue for gone, got %#v", got)
	}
	if !HasErrors(issues) {
		t.Fatalf("expected HasErrors to be true")
	}
}
