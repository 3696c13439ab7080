package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amitgawande/tools/internal/catalog"
	"github.com/amitgawande/tools/internal/checks"
	"github.com/amitgawande/tools/internal/config"
)

var ErrCheckFailed = errors.New("tool metadata check failed")

type CheckOptions struct {
	Config   config.Config
	Reporter Reporter
}

// Check lints the README of every tool directory, or every listing entry in
// legacy mode.
func Check(root string, opts CheckOptions) error {
	reporter := ensureReporter(opts.Reporter)
	cfg := opts.Config

	var issues []checks.Issue
	if cfg.Catalog.LegacyEnabled() {
		data, err := os.ReadFile(filepath.Join(root, cfg.Catalog.ReadmeFile))
		if err != nil {
			return fmt.Errorf("listing source %s: %w", cfg.Catalog.ReadmeFile, err)
		}
		for _, entry := range catalog.ParseListing(string(data)) {
			issues = append(issues, checks.Lint(entry.Name, entry.Metadata)...)
		}
	} else {
		candidates, _, err := catalog.Candidates(root, scanOptions(cfg))
		if err != nil {
			return err
		}
		progress := reporter.Progress("Checking", len(candidates))
		checker := checks.Checker{}
		for _, cand := range candidates {
			progress.Increment(cand.Slug)
			issues = append(issues, checker.Check([]catalog.Candidate{cand})...)
		}
		progress.Done()
	}

	errorCount := 0
	for _, issue := range issues {
		if issue.Severity == checks.SeverityError {
			errorCount++
		}
		reporter.Issue(string(issue.Severity), issue.Slug, fmt.Sprintf("%s (%s)", issue.Message, issue.Rule))
	}
	reporter.Info(fmt.Sprintf("%d issue(s), %d error(s)", len(issues), errorCount))
	if checks.HasErrors(issues) {
		return ErrCheckFailed
	}
	return nil
}
