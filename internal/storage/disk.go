// Package storage persists attachment bytes on the local filesystem.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// BlobStore abstracts where attachment bytes live. The disk implementation
// is the only one today; the interface keeps services testable.
type BlobStore interface {
	// Save streams r into a new blob named name, returning the full path.
	Save(name string, r io.Reader) (string, error)

	// Remove deletes the named blob. A missing blob is not an error.
	Remove(name string) error

	// Dir returns the directory blobs are served from.
	Dir() string
}

// DiskStore writes blobs into a single flat directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed and returns a store
// rooted there.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes r to dir/name. The name must already be collision-free; see
// GenerateStoredName.
func (s *DiskStore) Save(name string, r io.Reader) (string, error) {
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create blob %q: %w", name, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write blob %q: %w", name, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close blob %q: %w", name, err)
	}

	return path, nil
}

// Remove deletes dir/name, swallowing not-exist errors.
func (s *DiskStore) Remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the blob directory.
func (s *DiskStore) Dir() string {
	return s.dir
}

// GenerateStoredName returns a random hex name carrying over the original
// file extension, so stored files never collide regardless of what users
// upload.
func GenerateStoredName(originalFilename string) (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(originalFilename))
	return hex.EncodeToString(bytes) + ext, nil
}
