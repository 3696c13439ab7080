package locks

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const (
	Dir      = ".toolindex"
	fileName = "index.lock"
)

// LockFile records what the last generation wrote.
type LockFile struct {
	Output       string   `json:"output"`
	Variant      string   `json:"variant"`
	CatalogHash  string   `json:"catalog_hash"`
	DocumentHash string   `json:"document_hash"`
	Tools        []string `json:"tools"`
	GeneratedAt  string   `json:"generated_at"`
}

// RelPath is the lockfile location relative to the root.
func RelPath() string {
	return filepath.Join(Dir, fileName)
}

func LockPath(root string) string {
	return filepath.Join(root, RelPath())
}

// Read returns nil when no lockfile exists.
func Read(root string) (*LockFile, error) {
	data, err := os.ReadFile(LockPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var lock LockFile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, err
	}
	return &lock, nil
}

func Write(root string, lock LockFile) error {
	if lock.GeneratedAt == "" {
		lock.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	}
	path := LockPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(lock, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
