package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Save(ctx context.Context, folder, name string, r io.Reader) (string, error) {
	folder, name = segment(folder, "General"), segment(name, "file")
	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}
	return path.Join(URLPrefix, folder, name), nil
}

// segment reduces s to a single path element that cannot leave its parent.
func segment(s, fallback string) string {
	base := filepath.Base(filepath.FromSlash(s))
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return fallback
	}
	return base
}

func (s *LocalStore) Remove(ctx context.Context, fileURL string) error {
	rel := strings.TrimPrefix(filepath.ToSlash(fileURL), URLPrefix+"/")
	clean := path.Clean("/" + rel)
	if clean == "/" {
		return fmt.Errorf("refusing to remove %q", fileURL)
	}
	return os.Remove(filepath.Join(s.root, filepath.FromSlash(clean)))
}
