package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	mapset "github.com/deckarep/golang-set/v2"
	ignore "github.com/sabhiram/go-gitignore"
)

// hiddenPrefix marks directories the scanner never looks at.
const hiddenPrefix = "."

// Infrastructure directories that never hold a tool.
var excludedNames = mapset.NewSet(
	"node_modules",
	"vendor",
	"assets",
	"scripts",
	"templates",
	"dist",
	"build",
)

type Options struct {
	EntryFile  string
	ReadmeFile string
	// Exclude holds doublestar patterns matched against directory names.
	Exclude   []string
	Gitignore bool
	// Progress, when set, is called once with the candidate count and then
	// told about every README as it is read.
	Progress func(total int) Progress
}

// Progress observes Scan while it reads READMEs.
type Progress interface {
	Increment(label string)
	Done()
}

type SkipReason string

const (
	SkipExcluded   SkipReason = "excluded"
	SkipGitignored SkipReason = "gitignored"
	SkipNoEntry    SkipReason = "missing entry file"
	SkipNoReadme   SkipReason = "missing README"
	SkipUnreadable SkipReason = "unreadable README"
	SkipNotUTF8    SkipReason = "README is not valid UTF-8"
	SkipDuplicate  SkipReason = "duplicate slug"
	SkipNoPath     SkipReason = "missing path"
)

// Skip explains why a directory produced no record.
type Skip struct {
	Slug   string
	Reason SkipReason
	Err    error
}

// Warn reports whether the skip points at a broken tool rather than a
// directory that simply is not one.
func (s Skip) Warn() bool {
	switch s.Reason {
	case SkipUnreadable, SkipNotUTF8, SkipDuplicate, SkipNoPath:
		return true
	}
	return false
}

func (s Skip) String() string {
	if s.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", s.Slug, s.Reason, s.Err)
	}
	return fmt.Sprintf("%s: %s", s.Slug, s.Reason)
}

// Notice is a non-fatal problem with a record that was still produced.
type Notice struct {
	Slug string
	Err  error
}

type Result struct {
	Tools   []Tool
	Skipped []Skip
	Notices []Notice
}

// Candidate is a directory that holds both marker files.
type Candidate struct {
	Slug       string
	Dir        string
	ReadmePath string
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.EntryFile) == "" {
		o.EntryFile = "index.html"
	}
	if strings.TrimSpace(o.ReadmeFile) == "" {
		o.ReadmeFile = "README.md"
	}
	return o
}

// Scan discovers and loads every tool directly under root, in lexicographic
// directory order.
func Scan(root string, opts Options) (Result, error) {
	candidates, skipped, err := Candidates(root, opts)
	if err != nil {
		return Result{}, err
	}
	var progress Progress = noProgress{}
	if opts.Progress != nil {
		progress = opts.Progress(len(candidates))
	}
	defer progress.Done()

	result := Result{Skipped: skipped}
	for _, cand := range candidates {
		progress.Increment(cand.Slug)
		tool, notice, skip := Load(cand)
		if skip != nil {
			result.Skipped = append(result.Skipped, *skip)
			continue
		}
		if notice != nil {
			result.Notices = append(result.Notices, *notice)
		}
		result.Tools = append(result.Tools, tool)
	}
	return result, nil
}

// Candidates lists the immediate subdirectories of root that qualify as tool
// directories.
func Candidates(root string, opts Options) ([]Candidate, []Skip, error) {
	opts = opts.withDefaults()
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, nil, fmt.Errorf("read root: %w", err)
	}

	matcher, err := loadGitignore(root, opts.Gitignore)
	if err != nil {
		return nil, nil, err
	}

	var (
		candidates []Candidate
		skipped    []Skip
	)
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, hiddenPrefix) || !isDir(root, entry) {
			continue
		}
		if isExcluded(name, opts.Exclude) {
			skipped = append(skipped, Skip{Slug: name, Reason: SkipExcluded})
			continue
		}
		if matcher != nil && matcher.MatchesPath(name+"/") {
			skipped = append(skipped, Skip{Slug: name, Reason: SkipGitignored})
			continue
		}

		dir := filepath.Join(root, name)
		if !isFile(filepath.Join(dir, opts.EntryFile)) {
			skipped = append(skipped, Skip{Slug: name, Reason: SkipNoEntry})
			continue
		}
		readme := filepath.Join(dir, opts.ReadmeFile)
		if !isFile(readme) {
			skipped = append(skipped, Skip{Slug: name, Reason: SkipNoReadme})
			continue
		}
		candidates = append(candidates, Candidate{Slug: name, Dir: dir, ReadmePath: readme})
	}
	return candidates, skipped, nil
}

// Load reads one candidate's README. An unreadable or non UTF-8 README yields
// a skip; a frontmatter problem yields a notice alongside the tool.
func Load(cand Candidate) (Tool, *Notice, *Skip) {
	data, err := os.ReadFile(cand.ReadmePath)
	if err != nil {
		return Tool{}, nil, &Skip{Slug: cand.Slug, Reason: SkipUnreadable, Err: err}
	}
	if !utf8.Valid(data) {
		return Tool{}, nil, &Skip{Slug: cand.Slug, Reason: SkipNotUTF8}
	}
	meta, err := ParseReadme(string(data))
	tool := Materialize(cand.Slug, meta)
	if err != nil {
		return tool, &Notice{Slug: cand.Slug, Err: err}, nil
	}
	return tool, nil, nil
}

type noProgress struct{}

func (noProgress) Increment(string) {}
func (noProgress) Done()           {}

func isExcluded(name string, patterns []string) bool {
	if excludedNames.Contains(name) {
		return true
	}
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

func loadGitignore(root string, enabled bool) (*ignore.GitIgnore, error) {
	if !enabled {
		return nil, nil
	}
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read .gitignore: %w", err)
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	return ignore.CompileIgnoreLines(lines...), nil
}

// isDir follows symlinks so a linked tool directory counts as a directory.
func isDir(root string, entry os.DirEntry) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.IsDir()
	}
	info, err := os.Stat(filepath.Join(root, entry.Name()))
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
