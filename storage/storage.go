// Package storage persists uploaded note files.
package storage

import (
	"context"
	"io"
)

// URLPrefix is the public path under which locally stored files are served.
const URLPrefix = "uploads"

// FileStore saves a file under folder/name and returns the reference stored on
// the note: a path relative to the upload root, or an absolute URL.
type FileStore interface {
	Save(ctx context.Context, folder, name string, r io.Reader) (string, error)
	Remove(ctx context.Context, fileURL string) error
}
