package inbox

import (
	"fmt"
	"os"
	"path/filepath"
)

// Outbox is the directory converted documents are written to.
type Outbox struct {
	Root string
}

// OpenOutbox returns the outbox at root, creating the directory if needed.
func OpenOutbox(root string) (*Outbox, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("outbox: create dir: %w", err)
	}
	return &Outbox{Root: root}, nil
}

// PathFor returns the document path for a lead code.
func (o *Outbox) PathFor(leadCode string) string {
	return filepath.Join(o.Root, leadCode+recordExt)
}

// Write stores data as <leadCode>.json, replacing an earlier document for
// the same lead. The file is written under a temporary name and renamed so
// readers never see a partial document.
func (o *Outbox) Write(leadCode string, data []byte) (string, error) {
	if leadCode == "" || leadCode != filepath.Base(leadCode) {
		return "", fmt.Errorf("%w: lead code %q", ErrInvalidKey, leadCode)
	}
	tmp, err := os.CreateTemp(o.Root, "."+leadCode+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("outbox: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("outbox: write %q: %w", leadCode, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("outbox: write %q: %w", leadCode, err)
	}
	path := o.PathFor(leadCode)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("outbox: rename %q: %w", leadCode, err)
	}
	return path, nil
}
