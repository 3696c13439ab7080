package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/amitgawande/tools/internal/catalog"
)

func HashString(input string) string {
	return HashBytes([]byte(input))
}

func HashBytes(input []byte) string {
	hash := sha256.Sum256(input)
	return hex.EncodeToString(hash[:])
}

func HashStrings(parts []string) string {
	return HashString(strings.Join(parts, "\n\n"))
}

// Catalog hashes the ordered tools together with the settings that shape the
// page, so any change that would alter the document changes the hash.
func Catalog(tools []catalog.Tool, settings ...string) string {
	parts := make([]string, 0, len(tools)+len(settings))
	parts = append(parts, settings...)
	for _, tool := range tools {
		parts = append(parts, strings.Join([]string{
			tool.Slug,
			tool.Path,
			tool.Name,
			tool.Category,
			tool.Created,
			tool.Updated,
			tool.Description,
		}, "\x1f"))
	}
	return HashStrings(parts)
}
