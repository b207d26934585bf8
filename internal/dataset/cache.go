package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileCache stores fetched dataset resources on disk so the application
// keeps working offline after one successful fetch.
type FileCache struct {
	rootDir string
}

// NewFileCache creates a cache rooted at cacheDirectory.
func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{rootDir: cacheDirectory}
}

func (cache *FileCache) filePath(name string) string {
	return filepath.Join(cache.rootDir, name+".json")
}

// cache returns the cached contents for name, filling the cache with f's
// result on a miss.
func (cache *FileCache) cache(name string, f func() ([]byte, error)) ([]byte, error) {
	localFilePath := cache.filePath(name)
	if _, err := os.Stat(localFilePath); err == nil {
		contents, err := cache.read(name)
		if err != nil {
			return nil, fmt.Errorf("cache.read > %w", err)
		}
		return contents, nil
	}

	contents, err := f()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cache.rootDir, 0o755); err != nil {
		return contents, fmt.Errorf("os.MkdirAll > %w", err)
	}
	file, err := os.Create(localFilePath)
	if err != nil {
		return contents, fmt.Errorf("os.Create > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	if _, err := file.Write(contents); err != nil {
		return contents, fmt.Errorf("file.Write > %w", err)
	}
	return contents, nil
}

// invalidate drops the cached copy of name so the next read refetches.
func (cache *FileCache) invalidate(name string) error {
	err := os.Remove(cache.filePath(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("os.Remove > %w", err)
	}
	return nil
}

func (cache *FileCache) read(name string) ([]byte, error) {
	file, err := os.Open(cache.filePath(name))
	if err != nil {
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll > %w", err)
	}
	return contents, nil
}
