package kv

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

const (
	fileSuffix = ".json"
	stagingDir = ".staging"
)

// Diskv stores each key as a JSON file under a base directory.
type Diskv struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskv opens (creating if needed) a diskv store rooted at basePath.
func NewDiskv(basePath string) (*Diskv, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("kv: base path required")
	}
	if err := os.MkdirAll(filepath.Join(basePath, stagingDir), 0o755); err != nil {
		return nil, &StorageError{Op: "open", Key: basePath, Err: err}
	}
	return &Diskv{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			TempDir:           filepath.Join(basePath, stagingDir),
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}, nil
}

func (s *Diskv) Read(key string) (string, bool, error) {
	if !s.d.Has(key) {
		return "", false, nil
	}
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, readErr(key, err)
	}
	return string(val), true, nil
}

// Write goes through the staging directory and a rename, so a failed write
// leaves the previous value intact.
func (s *Diskv) Write(key, value string) error {
	if err := s.d.Write(key, []byte(value)); err != nil {
		return writeErr(key, err)
	}
	return nil
}

func (s *Diskv) Close() error {
	return nil
}

// BasePath returns the directory the store writes to.
func (s *Diskv) BasePath() string {
	return s.basePath
}

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key + fileSuffix,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.TrimSuffix(pathKey.FileName, fileSuffix)
}
