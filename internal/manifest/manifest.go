// Package manifest describes one conversion job: the flat record, the
// calculations PDF and the categorized photos that go with it.
package manifest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hajduko/SaWinHETUtility/internal/config"
	"github.com/hajduko/SaWinHETUtility/internal/photo"
)

// Suffixes recognised for a manifest sitting next to its record,
// e.g. "LEAD42-2025.manifest.yaml" for "LEAD42-2025.json".
var Suffixes = []string{".manifest.yaml", ".manifest.yml", ".manifest.json"}

// ErrNoRecord is returned by Validate when the manifest names no record.
var ErrNoRecord = errors.New("manifest: record path is required")

// Image is one photo of a job.
type Image struct {
	Path     string `json:"path" yaml:"path"`
	Category string `json:"category" yaml:"category"`
	Note     string `json:"note,omitempty" yaml:"note,omitempty"`
}

// Manifest is a conversion job description.
type Manifest struct {
	Record string  `json:"record" yaml:"record"`
	PDF    string  `json:"pdf,omitempty" yaml:"pdf,omitempty"`
	Images []Image `json:"images,omitempty" yaml:"images,omitempty"`
}

// LoadFromPath reads a manifest (YAML or JSON) and resolves its relative
// paths against the manifest's directory.
func LoadFromPath(path string) (*Manifest, error) {
	return load(path, "")
}

// LoadSibling reads the manifest sitting next to recordPath. The record
// field may be omitted and then defaults to recordPath.
func LoadSibling(path, recordPath string) (*Manifest, error) {
	return load(path, recordPath)
}

func load(path, record string) (*Manifest, error) {
	var m Manifest
	if err := config.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}
	m.Resolve(filepath.Dir(path))
	if strings.TrimSpace(m.Record) == "" {
		m.Record = record
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return &m, nil
}

// Resolve makes every relative path absolute with respect to dir.
func (m *Manifest) Resolve(dir string) {
	m.Record = join(dir, m.Record)
	m.PDF = join(dir, m.PDF)
	for i := range m.Images {
		m.Images[i].Path = join(dir, m.Images[i].Path)
	}
}

func join(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Validate checks that the job names a record and that every image has a
// path.
func (m *Manifest) Validate() error {
	if strings.TrimSpace(m.Record) == "" {
		return ErrNoRecord
	}
	for i, img := range m.Images {
		if strings.TrimSpace(img.Path) == "" {
			return fmt.Errorf("manifest: image %d has no path", i)
		}
	}
	return nil
}

// Categories returns the category of every image, in order.
func (m *Manifest) Categories() []string {
	out := make([]string, len(m.Images))
	for i, img := range m.Images {
		out[i] = img.Category
	}
	return out
}

// ParseImageFlag parses the --image flag form "path=...,category=...,note=...".
// A bare value without '=' is taken as the path. The note runs to the end
// of the flag, so it may contain commas.
func ParseImageFlag(s string) (Image, error) {
	var img Image
	for rest := s; rest != ""; {
		part := rest
		rest = ""
		if k, _, ok := strings.Cut(part, "="); !ok || strings.TrimSpace(k) != "note" {
			if i := strings.IndexByte(part, ','); i >= 0 {
				part, rest = part[:i], part[i+1:]
			}
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			if img.Path == "" && strings.TrimSpace(part) != "" {
				img.Path = strings.TrimSpace(part)
				continue
			}
			return Image{}, fmt.Errorf("image %q: expected key=value, got %q", s, part)
		}
		v = strings.TrimSpace(v)
		switch strings.TrimSpace(k) {
		case "path":
			img.Path = v
		case "category":
			img.Category = v
		case "note":
			img.Note = v
		default:
			return Image{}, fmt.Errorf("image %q: unknown key %q", s, k)
		}
	}
	if img.Path == "" {
		return Image{}, fmt.Errorf("image %q: path is required", s)
	}
	return img, nil
}

// Zip pairs parallel lists of image paths, categories and notes, the way
// the upload form submits them. The lists must have equal length.
func Zip(paths, categories, notes []string) ([]Image, error) {
	if len(notes) == 0 && len(paths) > 0 {
		notes = make([]string, len(paths))
	}
	if err := photo.CheckCounts(len(paths), len(categories), len(notes)); err != nil {
		return nil, err
	}
	out := make([]Image, len(paths))
	for i := range paths {
		out[i] = Image{Path: paths[i], Category: categories[i], Note: notes[i]}
	}
	return out, nil
}

// Sibling returns the manifest path accompanying a record file, if one of
// the recognised suffixes exists according to exists.
func Sibling(recordPath string, exists func(string) bool) (string, bool) {
	base := strings.TrimSuffix(recordPath, filepath.Ext(recordPath))
	for _, suffix := range Suffixes {
		p := base + suffix
		if exists(p) {
			return p, true
		}
	}
	return "", false
}
