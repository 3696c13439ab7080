package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// ListingSection is the heading of the top-level README section that lists
// tools inline.
const ListingSection = "Available Tools"

const indexFile = "index.html"

type listingField int

const (
	listingPath listingField = iota
	listingDescription
	listingCategory
	listingCreated
	listingUpdated
)

var listingFields = map[string]listingField{
	"Path":        listingPath,
	"Description": listingDescription,
	"Category":    listingCategory,
	"Created":     listingCreated,
	"Updated":     listingUpdated,
}

// ListingEntry is one "### Name" block of an inline listing.
type ListingEntry struct {
	Path string
	Metadata
}

// ScanListing reads the tool list from the README at the root instead of
// walking directories. A missing README is an error.
func ScanListing(root, readmeFile string) (Result, error) {
	if strings.TrimSpace(readmeFile) == "" {
		readmeFile = "README.md"
	}
	path := filepath.Join(root, readmeFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("listing source %s: %w", readmeFile, err)
	}

	var result Result
	seen := mapset.NewSet[string]()
	for _, entry := range ParseListing(string(data)) {
		slug := slugFromPath(entry.Path)
		if slug == "" {
			result.Skipped = append(result.Skipped, Skip{Slug: orDefault(entry.Name, DefaultName), Reason: SkipNoPath})
			continue
		}
		if !seen.Add(slug) {
			result.Skipped = append(result.Skipped, Skip{Slug: slug, Reason: SkipDuplicate})
			continue
		}
		tool := Materialize(slug, entry.Metadata)
		tool.Path = strings.TrimSpace(entry.Path)
		result.Tools = append(result.Tools, tool)
	}
	return result, nil
}

// ParseListing extracts the entries of the "## Available Tools" section.
func ParseListing(text string) []ListingEntry {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var (
		entries []ListingEntry
		current *ListingEntry
		inside  bool
	)
	flush := func() {
		if current != nil {
			entries = append(entries, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if heading, ok := secondLevelHeading(line); ok {
			if heading == ListingSection {
				inside = true
				continue
			}
			if inside {
				break
			}
			continue
		}
		if !inside {
			continue
		}
		if strings.HasPrefix(line, "### ") {
			flush()
			current = &ListingEntry{Metadata: Metadata{Name: strings.TrimSpace(line[4:])}}
			continue
		}
		if current == nil {
			continue
		}
		kind, value, ok := parseField(line, listingFields)
		if !ok {
			continue
		}
		switch kind {
		case listingPath:
			current.Path = strings.Trim(value, "`")
		case listingDescription:
			current.Description = value
		case listingCategory:
			current.Category = value
		case listingCreated:
			current.Created = value
		case listingUpdated:
			current.Updated = value
		}
	}
	flush()
	return entries
}

// slugFromPath derives the identifier used for dedup and listing. The link
// itself keeps the path as written.
func slugFromPath(path string) string {
	slug := strings.TrimSpace(path)
	if i := strings.Index(slug, "://"); i >= 0 {
		slug = slug[i+3:]
	}
	slug = strings.TrimPrefix(slug, "./")
	slug = strings.Trim(slug, "/")
	slug = strings.TrimSuffix(slug, "/"+indexFile)
	if slug == indexFile {
		return ""
	}
	return slug
}
