// Package checks lints tool READMEs for metadata that generation would
// silently default or pass through.
package checks

import (
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/amitgawande/tools/internal/catalog"
)

const DateLayout = "2006-01-02"

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

const (
	RuleUnreadable  = "unreadable"
	RuleFrontmatter = "frontmatter"
	RuleName        = "missing-name"
	RuleCategory    = "missing-category"
	RuleDescription = "missing-description"
	RuleDateFormat  = "date-format"
	RuleDateOrder   = "date-order"
)

type Issue struct {
	Slug     string
	Rule     string
	Severity Severity
	Message  string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s: %s (%s)", i.Slug, i.Message, i.Rule)
}

// Checker lints the README of each candidate tool directory.
type Checker struct{}

func (c Checker) Check(candidates []catalog.Candidate) []Issue {
	var issues []Issue
	for _, cand := range candidates {
		issues = append(issues, c.checkOne(cand)...)
	}
	return issues
}

func (c Checker) checkOne(cand catalog.Candidate) []Issue {
	data, err := os.ReadFile(cand.ReadmePath)
	if err != nil {
		return []Issue{{Slug: cand.Slug, Rule: RuleUnreadable, Severity: SeverityError, Message: err.Error()}}
	}
	if !utf8.Valid(data) {
		return []Issue{{Slug: cand.Slug, Rule: RuleUnreadable, Severity: SeverityError, Message: "README is not valid UTF-8"}}
	}
	meta, err := catalog.ParseReadme(string(data))
	var issues []Issue
	if err != nil {
		issues = append(issues, Issue{Slug: cand.Slug, Rule: RuleFrontmatter, Severity: SeverityError, Message: err.Error()})
	}
	return append(issues, Lint(cand.Slug, meta)...)
}

// Lint applies the metadata rules to one parsed README.
func Lint(slug string, meta catalog.Metadata) []Issue {
	var issues []Issue
	warn := func(rule, message string) {
		issues = append(issues, Issue{Slug: slug, Rule: rule, Severity: SeverityWarning, Message: message})
	}
	fail := func(rule, message string) {
		issues = append(issues, Issue{Slug: slug, Rule: rule, Severity: SeverityError, Message: message})
	}

	if meta.Name == "" {
		warn(RuleName, "no level-one heading, page shows "+catalog.DefaultName)
	}
	if meta.Category == "" {
		warn(RuleCategory, "no Category under ## Metadata")
	}
	if meta.Description == "" {
		warn(RuleDescription, "no paragraph under ## Description")
	}

	created, createdErr := parseDate(meta.Created)
	if createdErr != nil {
		fail(RuleDateFormat, fmt.Sprintf("Created %q is not YYYY-MM-DD", meta.Created))
	}
	updated, updatedErr := parseDate(meta.Updated)
	if updatedErr != nil {
		fail(RuleDateFormat, fmt.Sprintf("Updated %q is not YYYY-MM-DD", meta.Updated))
	}
	if createdErr == nil && updatedErr == nil && !created.IsZero() && !updated.IsZero() && updated.Before(created) {
		fail(RuleDateOrder, fmt.Sprintf("Updated %s is before Created %s", meta.Updated, meta.Created))
	}
	return issues
}

// HasErrors reports whether any issue is error level.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, value)
}
