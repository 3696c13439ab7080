package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/amitgawande/tools/internal/config"
	"github.com/amitgawande/tools/internal/fingerprint"
	"github.com/amitgawande/tools/internal/locks"
	"github.com/amitgawande/tools/internal/render"
)

var ErrOutOfDate = errors.New("index out of date")

type StatusOptions struct {
	Config   config.Config
	Reporter Reporter
}

type CleanOptions struct {
	Config   config.Config
	DryRun   bool
	Reporter Reporter
}

// Status compares the tools on disk with what the lockfile says was last
// generated.
func Status(root string, opts StatusOptions) error {
	reporter := ensureReporter(opts.Reporter)
	cfg := opts.Config

	result, err := loadCatalog(root, cfg, noopReporter{}, false)
	if err != nil {
		return err
	}
	if len(result.Tools) == 0 {
		reporter.Warn("no tool directories found")
		return nil
	}

	kind, detail, err := indexStatus(root, cfg, catalogHash(render.Order(result.Tools, cfg.Render.Variant), cfg))
	if err != nil {
		return err
	}
	reporter.Status(kind, cfg.Output, detail)
	if kind != StatusOK {
		return ErrOutOfDate
	}
	return nil
}

func indexStatus(root string, cfg config.Config, currentHash string) (StatusKind, string, error) {
	data, err := os.ReadFile(filepath.Join(root, cfg.Output))
	if err != nil {
		if os.IsNotExist(err) {
			return StatusMissing, "not generated yet", nil
		}
		return "", "", err
	}
	lock, err := locks.Read(root)
	if err != nil {
		return "", "", fmt.Errorf("read lockfile: %w", err)
	}
	switch {
	case lock == nil:
		return StatusStale, "no lockfile", nil
	case lock.Output != cfg.Output:
		return StatusStale, "output path changed", nil
	case lock.CatalogHash != currentHash:
		return StatusStale, "tools or settings changed", nil
	case lock.DocumentHash != fingerprint.HashString(render.StripTimestamp(string(data))):
		return StatusStale, "output edited since last generation", nil
	}
	return StatusOK, fmt.Sprintf("%d tool(s)", len(lock.Tools)), nil
}

// Clean removes the generated page and the lockfile.
func Clean(root string, opts CleanOptions) error {
	reporter := ensureReporter(opts.Reporter)

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	targets := []string{opts.Config.Output}
	if lock, err := locks.Read(root); err == nil && lock != nil && lock.Output != "" && lock.Output != opts.Config.Output {
		targets = append(targets, lock.Output)
	}
	targets = append(targets, locks.RelPath())

	removed, missing := 0, 0
	for _, rel := range targets {
		abs, err := resolveWithinRoot(rootAbs, rel)
		if err != nil {
			return err
		}
		if opts.DryRun {
			reporter.Info("dry-run remove " + rel)
			continue
		}
		wasRemoved, wasMissing, err := removePath(abs)
		if err != nil {
			return err
		}
		if wasRemoved {
			removed++
			reporter.CleanRemoved(rel)
		}
		if wasMissing {
			missing++
			reporter.CleanMissing(rel)
		}
	}
	if !opts.DryRun {
		// Only drops the lock directory when nothing else lives there.
		_ = os.Remove(filepath.Join(rootAbs, locks.Dir))
	}

	reporter.CleanSummary(removed, missing)
	return nil
}

func resolveWithinRoot(rootAbs, rel string) (string, error) {
	if strings.TrimSpace(rel) == "" {
		return "", errors.New("empty path")
	}
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("refusing to remove absolute path %q", rel)
	}
	abs := filepath.Clean(filepath.Join(rootAbs, rel))
	rootWithSep := rootAbs + string(filepath.Separator)
	if abs != rootAbs && !strings.HasPrefix(abs, rootWithSep) {
		return "", fmt.Errorf("refusing to remove path outside root: %s", rel)
	}
	return abs, nil
}

func removePath(path string) (removed bool, missing bool, err error) {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, true, nil
		}
		return false, false, err
	}
	return true, false, nil
}
