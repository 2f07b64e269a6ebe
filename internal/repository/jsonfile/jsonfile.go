// Package jsonfile stores the item collection as a JSON array in a single
// file on disk. It is the default backend.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/moby/sys/atomicwriter"

	"github.com/sakif/itembox/internal/model"
	"github.com/sakif/itembox/internal/repository"
)

var _ repository.Document = (*File)(nil)

// File is a repository.Document backed by one file.
type File struct {
	path string
	perm os.FileMode
}

// New returns a File at path, creating the parent directory if needed.
// The file itself is created lazily on the first Save.
func New(path string) (*File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile: creating directory %s: %w", dir, err)
	}
	return &File{path: path, perm: 0o644}, nil
}

// Path returns the backing file location.
func (f *File) Path() string {
	return f.path
}

// Load reads the whole collection. A missing file is an empty collection;
// a file that isn't a JSON array of items is an error.
func (f *File) Load(_ context.Context) ([]model.Item, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile: reading %s: %w", f.path, err)
	}

	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("jsonfile: decoding %s: %w", f.path, err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// Save replaces the file contents. atomicwriter writes a temp file in the
// same directory and renames it over the target, so readers never see a
// truncated document.
func (f *File) Save(_ context.Context, items []model.Item) error {
	data, err := Encode(items)
	if err != nil {
		return fmt.Errorf("jsonfile: encoding: %w", err)
	}
	if err := atomicwriter.WriteFile(f.path, data, f.perm); err != nil {
		return fmt.Errorf("jsonfile: writing %s: %w", f.path, err)
	}
	return nil
}

// Encode renders items the way every document backend persists them:
// two-space indent, no HTML escaping (so "<", "&" and non-ASCII text are
// stored verbatim), and "[]" rather than "null" for an empty collection.
func Encode(items []model.Item) ([]byte, error) {
	if items == nil {
		items = []model.Item{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
