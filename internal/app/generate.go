package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/amitgawande/tools/internal/catalog"
	"github.com/amitgawande/tools/internal/config"
	"github.com/amitgawande/tools/internal/fingerprint"
	"github.com/amitgawande/tools/internal/locks"
	"github.com/amitgawande/tools/internal/render"
)

type GenerateOptions struct {
	Config   config.Config
	DryRun   bool
	Verbose  bool
	Now      func() time.Time
	Reporter Reporter
}

// Generate scans root and writes the landing page. Finding no tools is not
// an error: a warning is reported and the previous output stays in place.
func Generate(root string, opts GenerateOptions) error {
	reporter := ensureReporter(opts.Reporter)
	cfg := opts.Config

	result, err := loadCatalog(root, cfg, reporter, opts.Verbose)
	if err != nil {
		return err
	}
	reporter.Info(fmt.Sprintf("Found %d tool(s)", len(result.Tools)))
	if len(result.Tools) == 0 {
		reporter.Warn(fmt.Sprintf("no tool directories found; %s left untouched", cfg.Output))
		return nil
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	renderOpts := render.OptionsFromConfig(cfg)
	renderOpts.Now = now()

	reporter.Info("Generating " + cfg.Output + "...")
	doc, err := render.Document(result.Tools, renderOpts)
	if err != nil {
		return err
	}
	if opts.DryRun {
		reporter.Info(fmt.Sprintf("dry-run: would write %d bytes to %s", len(doc), cfg.Output))
		return nil
	}

	outputAbs := filepath.Join(root, cfg.Output)
	if err := os.MkdirAll(filepath.Dir(outputAbs), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(outputAbs, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output, err)
	}

	ordered := render.Order(result.Tools, cfg.Render.Variant)
	slugs := make([]string, 0, len(ordered))
	for _, tool := range ordered {
		slugs = append(slugs, tool.Slug)
	}
	if err := locks.Write(root, locks.LockFile{
		Output:       cfg.Output,
		Variant:      cfg.Render.Variant,
		CatalogHash:  catalogHash(ordered, cfg),
		DocumentHash: fingerprint.HashString(render.StripTimestamp(doc)),
		Tools:        slugs,
		GeneratedAt:  renderOpts.Now.UTC().Format(time.RFC3339),
	}); err != nil {
		return fmt.Errorf("write lockfile: %w", err)
	}

	reporter.Success("✓ " + cfg.Output + " generated successfully!")
	return nil
}

// loadCatalog runs the scanner configured by cfg and reports what it skipped.
func loadCatalog(root string, cfg config.Config, reporter Reporter, verbose bool) (catalog.Result, error) {
	if cfg.Catalog.LegacyEnabled() {
		reporter.Info("Parsing " + cfg.Catalog.ReadmeFile + "...")
		result, err := catalog.ScanListing(root, cfg.Catalog.ReadmeFile)
		if err != nil {
			return catalog.Result{}, err
		}
		reportSkips(result, reporter, verbose)
		return result, nil
	}

	reporter.Info("Scanning tool directories...")
	opts := scanOptions(cfg)
	opts.Progress = func(total int) catalog.Progress {
		return reporter.Progress("Reading", total)
	}
	result, err := catalog.Scan(root, opts)
	if err != nil {
		return catalog.Result{}, err
	}
	reportSkips(result, reporter, verbose)
	return result, nil
}

func reportSkips(result catalog.Result, reporter Reporter, verbose bool) {
	for _, skip := range result.Skipped {
		if skip.Warn() {
			reporter.Warn(skip.String())
			continue
		}
		if verbose {
			reporter.Skip(skip.Slug, string(skip.Reason))
		}
	}
	for _, notice := range result.Notices {
		reporter.Warn(fmt.Sprintf("%s: %v", notice.Slug, notice.Err))
	}
}

func scanOptions(cfg config.Config) catalog.Options {
	return catalog.Options{
		EntryFile:  cfg.Catalog.EntryFile,
		ReadmeFile: cfg.Catalog.ReadmeFile,
		Exclude:    cfg.Catalog.Exclude,
		Gitignore:  cfg.Catalog.GitignoreEnabled(),
	}
}

func catalogHash(ordered []catalog.Tool, cfg config.Config) string {
	return fingerprint.Catalog(ordered,
		cfg.Render.Variant,
		strconv.Itoa(cfg.Render.TruncateLength()),
		cfg.Site.Title,
		cfg.Site.Subtitle,
		cfg.Site.Author,
		cfg.Site.AuthorURL,
	)
}
