package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/amitgawande/tools/internal/config"
)

var ErrFrontmatter = errors.New("invalid frontmatter")

const dateLayout = "2006-01-02"

type section int

const (
	sectionOutside section = iota
	sectionMetadata
	sectionDescription
)

// cursor is the parser state carried from one line to the next. collected
// records whether the current description block has content yet.
type cursor struct {
	section   section
	collected bool
}

type fieldKind int

const (
	fieldNone fieldKind = iota
	fieldCategory
	fieldCreated
	fieldUpdated
)

// update is what a single line contributes to the metadata.
type update struct {
	name      string
	field     fieldKind
	value     string
	descLine  string
	descEnded bool
}

var metadataFields = map[string]fieldKind{
	"Category": fieldCategory,
	"Created":  fieldCreated,
	"Updated":  fieldUpdated,
}

// ParseReadme extracts metadata from README text. Leading TOML (+++) or YAML
// (---) frontmatter fills fields the body leaves absent. A frontmatter error
// is returned wrapped in ErrFrontmatter together with the metadata parsed
// from the full text.
func ParseReadme(text string) (Metadata, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	front, body, err := splitReadme(text)
	if err != nil {
		return parseBody(text), fmt.Errorf("%w: %v", ErrFrontmatter, err)
	}
	meta := parseBody(body)
	return meta.fill(front), nil
}

func splitReadme(text string) (Metadata, string, error) {
	fields := map[string]any{}
	if raw, body, ok, err := config.SplitTomlFrontmatter(text); err != nil {
		return Metadata{}, "", err
	} else if ok {
		if err := toml.Unmarshal([]byte(raw), &fields); err != nil {
			return Metadata{}, "", fmt.Errorf("toml: %w", err)
		}
		return frontmatterMetadata(fields), body, nil
	}
	if raw, body, ok, err := config.SplitYAMLFrontmatter(text); err != nil {
		return Metadata{}, "", err
	} else if ok {
		if err := yaml.Unmarshal([]byte(raw), &fields); err != nil {
			return Metadata{}, "", fmt.Errorf("yaml: %w", err)
		}
		return frontmatterMetadata(fields), body, nil
	}
	return Metadata{}, text, nil
}

func frontmatterMetadata(fields map[string]any) Metadata {
	return Metadata{
		Name:        scalar(fields["name"]),
		Category:    scalar(fields["category"]),
		Created:     scalar(fields["created"]),
		Updated:     scalar(fields["updated"]),
		Description: scalar(fields["description"]),
	}
}

// scalar renders a frontmatter value as text. Native TOML and YAML dates
// come back as YYYY-MM-DD; tables and arrays are ignored.
func scalar(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format(dateLayout)
		}
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func parseBody(text string) Metadata {
	var (
		meta      Metadata
		cur       cursor
		desc      []string
		descEnded bool
	)
	for _, line := range strings.Split(text, "\n") {
		var u update
		cur, u = step(cur, line)
		if u.name != "" && meta.Name == "" {
			meta.Name = u.name
		}
		switch u.field {
		case fieldCategory:
			meta.Category = u.value
		case fieldCreated:
			meta.Created = u.value
		case fieldUpdated:
			meta.Updated = u.value
		}
		if descEnded {
			continue
		}
		if u.descLine != "" {
			desc = append(desc, u.descLine)
		}
		if u.descEnded && len(desc) > 0 {
			descEnded = true
		}
	}
	meta.Description = strings.Join(desc, " ")
	return meta
}

// step advances the parser by one line.
func step(cur cursor, line string) (cursor, update) {
	var u update
	if strings.HasPrefix(line, "# ") {
		u.name = strings.TrimSpace(line[2:])
	}

	if heading, ok := secondLevelHeading(line); ok {
		if cur.section == sectionDescription && heading != "Description" {
			u.descEnded = true
		}
		switch heading {
		case "Metadata":
			if cur.section != sectionMetadata {
				return cursor{section: sectionMetadata}, u
			}
			return cur, u
		case "Description":
			if cur.section != sectionDescription {
				return cursor{section: sectionDescription}, u
			}
			return cur, u
		default:
			return cursor{section: sectionOutside}, u
		}
	}

	switch cur.section {
	case sectionMetadata:
		if kind, value, ok := parseField(line, metadataFields); ok {
			u.field = kind
			u.value = value
		}
	case sectionDescription:
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if cur.collected {
				u.descEnded = true
				return cursor{section: sectionOutside}, u
			}
			return cur, u
		}
		u.descLine = trimmed
		cur.collected = true
	}
	return cur, u
}

func secondLevelHeading(line string) (string, bool) {
	if !strings.HasPrefix(line, "## ") {
		return "", false
	}
	return strings.TrimSpace(line[3:]), true
}

// parseField recognizes "**Key**: value" with an optional leading list dash.
func parseField[K any](line string, keys map[string]K) (K, string, bool) {
	var zero K
	s := strings.TrimSpace(line)
	s = strings.TrimSpace(strings.TrimPrefix(s, "-"))
	if !strings.HasPrefix(s, "**") {
		return zero, "", false
	}
	end := strings.Index(s[2:], "**")
	if end < 0 {
		return zero, "", false
	}
	key := s[2 : 2+end]
	kind, ok := keys[key]
	if !ok {
		return zero, "", false
	}
	rest := s[2+end+2:]
	if !strings.HasPrefix(strings.TrimSpace(rest), ":") {
		return zero, "", false
	}
	colon := strings.Index(s, ":")
	return kind, strings.TrimSpace(s[colon+1:]), true
}
