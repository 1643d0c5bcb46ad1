// Package inbox is the directory-backed queue of pending flat records and
// the output directory converted documents are written to.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const recordExt = ".json"

// ErrInvalidKey is returned for keys that would escape the inbox directory.
var ErrInvalidKey = errors.New("inbox: invalid key")

// Item is one pending record.
type Item struct {
	Key     string    `json:"key"`
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Dir is an inbox rooted at a directory. Keys are file names inside it.
type Dir struct {
	Root string
}

// Open returns the inbox at root, creating the directory if needed.
func Open(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("inbox: create dir: %w", err)
	}
	return &Dir{Root: root}, nil
}

// List returns the pending records sorted by key. Job manifests stored
// next to their records are not listed.
func (d *Dir) List(_ context.Context) ([]Item, error) {
	entries, err := os.ReadDir(d.Root)
	if err != nil {
		return nil, fmt.Errorf("inbox: list: %w", err)
	}
	var items []Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !IsRecord(name) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		items = append(items, Item{
			Key:     name,
			Name:    strings.TrimSuffix(name, filepath.Ext(name)),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
	return items, nil
}

// IsRecord reports whether a file name looks like a flat record.
func IsRecord(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, recordExt) && !strings.HasSuffix(lower, ".manifest"+recordExt)
}

// Path returns the file path of key.
func (d *Dir) Path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(d.Root, key), nil
}

// Read returns the content of key.
func (d *Dir) Read(_ context.Context, key string) ([]byte, error) {
	path, err := d.Path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("inbox: read %q: %w", key, err)
	}
	return data, nil
}

// Remove deletes key.
func (d *Dir) Remove(_ context.Context, key string) error {
	path, err := d.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("inbox: remove %q: %w", key, err)
	}
	return nil
}

// LeadCode derives the customer lead code from a record key: the file
// name up to the first '-', without extension.
// "LEAD42-2025-03.json" -> "LEAD42"
func LeadCode(key string) string {
	name := filepath.Base(key)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if lead, _, _ := strings.Cut(name, "-"); lead != "" {
		return lead
	}
	return name
}
