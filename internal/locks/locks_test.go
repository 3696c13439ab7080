package locks

import (
	"os"
	"testing"
)

func TestWriteReadLock(t *testing.T) {
	root := t.TempDir()
	lock := LockFile{
		Output:       "index.html",
		Variant:      "recency",
		CatalogHash:  "catalog-hash",
		DocumentHash: "document-hash",
		Tools:        []string{"json-viewer", "timer"},
	}

	if err := Write(root, lock); err != nil {
		t.Fatalf("write lock: %v", err)
	}
	if _, err := os.Stat(LockPath(root)); err != nil {
		t.Fatalf("lock file not written: %v", err)
	}

	read, err := Read(root)
	if err != nil {
		t.Fatalf("read lock: %v", err)
	}
	if read == nil {
		t.Fatalf("expected lock to be read")
	}
	if read.CatalogHash != lock.CatalogHash || read.DocumentHash != lock.DocumentHash {
		t.Fatalf("unexpected hashes: %#v", read)
	}
	if len(read.Tools) != 2 || read.Tools[1] != "timer" {
		t.Fatalf("unexpected tools: %#v", read.Tools)
	}
	if read.GeneratedAt == "" {
		t.Fatalf("expected generated_at to be stamped")
	}
}

func TestReadMissingLock(t *testing.T) {
	lock, err := Read(t.TempDir())
	if err != nil {
		t.Fatalf("read lock: %v", err)
	}
	if lock != nil {
		t.Fatalf("expected nil lock, got %#v", lock)
	}
}
