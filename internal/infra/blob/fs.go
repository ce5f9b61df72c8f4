package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const contentTypeSuffix = ".content-type"

// FSStore keeps blobs as files under a directory. Used for local
// development and tests.
type FSStore struct {
	dir string
}

var _ Store = (*FSStore)(nil)

func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

func (s *FSStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}

func (s *FSStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("failed to create blob: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(p)
		return fmt.Errorf("failed to write blob: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write blob: %w", err)
	}
	return os.WriteFile(p+contentTypeSuffix, []byte(contentType), 0644)
}

func (s *FSStore) Get(ctx context.Context, key string) (*Object, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, ErrNotFound
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	obj := &Object{Body: f}
	if st, err := f.Stat(); err == nil {
		obj.Size = st.Size()
	}
	if ct, err := os.ReadFile(p + contentTypeSuffix); err == nil {
		obj.ContentType = string(ct)
	}
	return obj, nil
}

// Delete of a missing key is not an error, matching S3 semantics.
func (s *FSStore) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	os.Remove(p + contentTypeSuffix)
	return nil
}
