package snapshot

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vango-dev/reconcile/internal/errors"
)

// Extension is appended to keys by FileStore.
const Extension = ".html"

// FileStore stores snapshots as files below a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New("S150").Wrap(err).WithDetail("Cannot create " + dir)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the root directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, filepath.FromSlash(key)+Extension)
}

// Put writes the snapshot through a temporary file so readers never see a
// partial write.
func (s *FileStore) Put(ctx context.Context, key string, html []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.New("S150").Wrap(err)
	}

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.New("S150").Wrap(err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return errors.New("S150").Wrap(err)
	}
	if _, err := tmp.Write(html); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.New("S150").Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.New("S150").Wrap(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.New("S150").Wrap(err)
	}
	return nil
}

// Get reads the snapshot stored under key.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.New("S151").Wrap(err)
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("S152").WithDetail("No snapshot " + key + " in " + s.dir)
		}
		return nil, errors.New("S151").Wrap(err)
	}
	return data, nil
}

// List walks the directory for snapshot files.
func (s *FileStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, Extension) || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return err
		}
		key := strings.TrimSuffix(filepath.ToSlash(rel), Extension)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, errors.New("S151").Wrap(err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Delete removes the snapshot file.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.New("S150").Wrap(err)
	}
	return nil
}
