// Package convert runs conversion jobs: it gathers the flat record and the
// attachments of a job, applies the attachment gate, runs the transform
// engine and records the written document in the ledger.
package convert

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hajduko/SaWinHETUtility/internal/inbox"
	"github.com/hajduko/SaWinHETUtility/internal/logging"
	"github.com/hajduko/SaWinHETUtility/internal/manifest"
	"github.com/hajduko/SaWinHETUtility/internal/photo"
	"github.com/hajduko/SaWinHETUtility/internal/store"
	"github.com/hajduko/SaWinHETUtility/internal/transform"
)

// ErrNoPDF is returned for a job without a calculations PDF.
var ErrNoPDF = errors.New("convert: calculations pdf is required")

// Job is one conversion request.
type Job struct {
	// Record is the path of the flat record file. It is ignored when
	// InboxKey is set.
	Record string
	// InboxKey names a record in the runner's inbox. Such records are
	// removed after a successful conversion unless KeepInput is set.
	InboxKey string
	PDF      string
	Images   []manifest.Image
}

// FromManifest builds a job from a loaded manifest.
func FromManifest(m *manifest.Manifest) Job {
	return Job{Record: m.Record, PDF: m.PDF, Images: m.Images}
}

// Key identifies the job's record: the inbox key or the record file name.
func (j Job) Key() string {
	if j.InboxKey != "" {
		return j.InboxKey
	}
	return filepath.Base(j.Record)
}

func (j Job) categories() []string {
	out := make([]string, len(j.Images))
	for i, img := range j.Images {
		out[i] = img.Category
	}
	return out
}

// Source is where inbox records are read from and removed after a
// successful conversion. *inbox.Dir implements it.
type Source interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
}

// Runner executes jobs. Inbox is only needed for jobs with an InboxKey and
// Store may be nil when no ledger is kept.
type Runner struct {
	Inbox     Source
	Outbox    *inbox.Outbox
	Store     store.Store
	KeepInput bool
	Logger    *slog.Logger
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return logging.New("convert")
}

// Run converts one job and returns its ledger entry. Nothing is written
// when the attachment gate or the transformation fails.
func (r *Runner) Run(ctx context.Context, job Job) (*store.Conversion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := job.Key()
	lead := inbox.LeadCode(key)
	log := logging.ForRecord(r.logger(), lead, key)
	start := time.Now()

	categories := job.categories()
	if err := photo.CheckRequired(categories); err != nil {
		return nil, fmt.Errorf("convert %s: %w", key, err)
	}
	if unknown := photo.Unknown(categories); len(unknown) > 0 {
		log.Warn("images with unknown categories", slog.Any("categories", unknown))
	}
	if job.PDF == "" {
		return nil, fmt.Errorf("convert %s: %w", key, ErrNoPDF)
	}

	raw, err := r.readRecord(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", key, err)
	}
	entries, err := transform.ParseRecordBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", key, err)
	}
	pdf, err := os.ReadFile(job.PDF)
	if err != nil {
		return nil, fmt.Errorf("convert %s: read pdf: %w", key, err)
	}
	images, err := readImages(job.Images)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", key, err)
	}

	doc, err := transform.Transform(transform.Input{Entries: entries, PDF: pdf, Images: images})
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", key, err)
	}
	var buf bytes.Buffer
	if err := transform.Encode(&buf, doc); err != nil {
		return nil, fmt.Errorf("convert %s: %w", key, err)
	}
	out := buf.Bytes()

	path, err := r.Outbox.Write(lead, out)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", key, err)
	}
	sum := sha256.Sum256(out)
	conv := &store.Conversion{
		LeadCode:    lead,
		InputKey:    key,
		OutputPath:  path,
		Images:      len(images),
		PDFBytes:    int64(len(pdf)),
		OutputBytes: int64(len(out)),
		SHA256:      hex.EncodeToString(sum[:]),
	}
	if r.Store != nil {
		if err := r.Store.Save(conv); err != nil {
			return nil, fmt.Errorf("convert %s: record conversion: %w", key, err)
		}
	}

	if job.InboxKey != "" && !r.KeepInput {
		if err := r.Inbox.Remove(ctx, job.InboxKey); err != nil {
			// The document is already written; a stale inbox entry is not fatal.
			log.Warn("remove converted record", logging.Err(err))
		}
	}

	log.Info("converted",
		slog.String("output", path),
		slog.Int("images", len(images)),
		slog.Int("pdf_bytes", len(pdf)),
		slog.Duration("duration", time.Since(start)),
	)
	return conv, nil
}

func (r *Runner) readRecord(ctx context.Context, job Job) ([]byte, error) {
	if job.InboxKey != "" {
		if r.Inbox == nil {
			return nil, errors.New("no inbox configured")
		}
		return r.Inbox.Read(ctx, job.InboxKey)
	}
	data, err := os.ReadFile(job.Record)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	return data, nil
}

func readImages(specs []manifest.Image) ([]transform.Image, error) {
	out := make([]transform.Image, 0, len(specs))
	for _, s := range specs {
		content, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		out = append(out, transform.Image{Content: content, Note: s.Note, Category: s.Category})
	}
	return out, nil
}
