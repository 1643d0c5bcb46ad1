package convert

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hajduko/SaWinHETUtility/internal/inbox"
	"github.com/hajduko/SaWinHETUtility/internal/manifest"
	"github.com/hajduko/SaWinHETUtility/internal/photo"
	"github.com/hajduko/SaWinHETUtility/internal/store"
	"github.com/hajduko/SaWinHETUtility/internal/transform"
)

const validRecord = `{"data": [
	["buildingData__buildingAddress__houseNumber", "12"],
	["buildingData__buildingAddress__building", "A"],
	["buildingData__buildingAddress__floor", "3"],
	["buildingData__buildingAddress__doorNumber", "4"],
	["buildingData__buildingAddress__staircase", "B"],
	["buildingData__topographicalNumber", "1234/5"],
	["certifierDetails__address__houseNumber", "7"],
	["certifierDetails__address__building", "C"],
	["certifierDetails__address__floor", "1"],
	["certifierDetails__address__doorNumber", "2"],
	["certifierDetails__address__staircase", "D"],
	["certifierDetails__topographicalNumber", "99"],
	["certifierDetails__phoneNumber", "36301234567"],
	["validity__siteInspectionDate", "01/02/25"],
	["buildingData__note", "Hőszigetelt <új> ház"]
]}`

type fixture struct {
	dir    string
	runner *Runner
	box    *inbox.Dir
	store  *store.MemStore
	logs   *bytes.Buffer
	pdf    string
	images []manifest.Image
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	box, err := inbox.Open(filepath.Join(dir, "inbox"))
	if err != nil {
		t.Fatal(err)
	}
	out, err := inbox.OpenOutbox(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatal(err)
	}
	logs := &bytes.Buffer{}
	st := store.NewMemStore()
	f := &fixture{
		dir:   dir,
		box:   box,
		store: st,
		logs:  logs,
		runner: &Runner{
			Inbox:  box,
			Outbox: out,
			Store:  st,
			Logger: slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		},
	}
	f.pdf = f.write(t, "calc.pdf", "%PD")
	for i, cat := range []photo.Category{photo.CoverPhoto, photo.CharacteristicHeatExchanger, photo.CharacteristicOpeningStructure} {
		name := string(cat) + ".jpg"
		f.images = append(f.images, manifest.Image{
			Path:     f.write(t, name, strings.Repeat("x", i+1)),
			Category: string(cat),
			Note:     "note " + name,
		})
	}
	return f
}

func (f *fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_FileRecord(t *testing.T) {
	f := newFixture(t)
	record := f.write(t, "LEAD42-2025-03.json", validRecord)

	conv, err := f.runner.Run(context.Background(), Job{Record: record, PDF: f.pdf, Images: f.images})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if conv.LeadCode != "LEAD42" || conv.InputKey != "LEAD42-2025-03.json" || conv.Images != 3 || conv.PDFBytes != 3 {
		t.Errorf("conversion = %+v", conv)
	}
	if conv.OutputPath != filepath.Join(f.dir, "out", "LEAD42.json") {
		t.Errorf("OutputPath = %q", conv.OutputPath)
	}

	data, err := os.ReadFile(conv.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if int64(len(data)) != conv.OutputBytes {
		t.Errorf("OutputBytes = %d, file has %d", conv.OutputBytes, len(data))
	}
	if !bytes.Contains(data, []byte(`"note": "Hőszigetelt <új> ház"`)) {
		t.Errorf("output escapes text:\n%s", data)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got := doc["validity"].(map[string]any)["siteInspectionDate"]; got != "25.01.02." {
		t.Errorf("siteInspectionDate = %v", got)
	}
	if got := doc[transform.PDFKey]; got != base64.StdEncoding.EncodeToString([]byte("%PD")) {
		t.Errorf("pdf = %v", got)
	}
	photos := doc[transform.PhotosKey].([]any)
	if len(photos) != 3 || photos[0].(map[string]any)["category"] != "coverPhoto" {
		t.Errorf("photos = %v", photos)
	}

	saved, err := f.store.Get(conv.ID)
	if err != nil {
		t.Fatalf("ledger Get: %v", err)
	}
	if diff := cmp.Diff(conv, saved); diff != "" {
		t.Errorf("ledger entry (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(record); err != nil {
		t.Errorf("file records outside the inbox must not be removed: %v", err)
	}
	if !strings.Contains(f.logs.String(), "lead_code=LEAD42") {
		t.Errorf("missing lead_code in logs:\n%s", f.logs)
	}
}

func TestRun_InboxRecordIsRemoved(t *testing.T) {
	f := newFixture(t)
	f.write(t, "inbox/LEAD7-x.json", validRecord)

	if _, err := f.runner.Run(context.Background(), Job{InboxKey: "LEAD7-x.json", PDF: f.pdf, Images: f.images}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	items, _ := f.box.List(context.Background())
	if len(items) != 0 {
		t.Errorf("inbox still holds %v", items)
	}
	if _, err := os.Stat(filepath.Join(f.dir, "out", "LEAD7.json")); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestRun_KeepInput(t *testing.T) {
	f := newFixture(t)
	f.runner.KeepInput = true
	f.write(t, "inbox/LEAD7-x.json", validRecord)

	if _, err := f.runner.Run(context.Background(), Job{InboxKey: "LEAD7-x.json", PDF: f.pdf, Images: f.images}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	items, _ := f.box.List(context.Background())
	if len(items) != 1 {
		t.Errorf("inbox = %v, want the record kept", items)
	}
}

func TestRun_GateFailuresWriteNothing(t *testing.T) {
	cases := []struct {
		name  string
		job   func(f *fixture, record string) Job
		check func(error) bool
	}{
		{
			name: "missing category",
			job: func(f *fixture, record string) Job {
				return Job{Record: record, PDF: f.pdf, Images: f.images[:2]}
			},
			check: func(err error) bool {
				var mce *photo.MissingCategoriesError
				return errors.As(err, &mce) && len(mce.Missing) == 1
			},
		},
		{
			name: "no pdf",
			job: func(f *fixture, record string) Job {
				return Job{Record: record, Images: f.images}
			},
			check: func(err error) bool { return errors.Is(err, ErrNoPDF) },
		},
		{
			name: "missing image file",
			job: func(f *fixture, record string) Job {
				imgs := append([]manifest.Image{}, f.images...)
				imgs[0].Path = filepath.Join(f.dir, "gone.jpg")
				return Job{Record: record, PDF: f.pdf, Images: imgs}
			},
			check: func(err error) bool { return errors.Is(err, os.ErrNotExist) },
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			record := f.write(t, "LEAD1.json", validRecord)
			_, err := f.runner.Run(context.Background(), tc.job(f, record))
			if !tc.check(err) {
				t.Fatalf("unexpected error: %v", err)
			}
			assertNothingWritten(t, f)
		})
	}
}

func TestRun_TransformFailures(t *testing.T) {
	cases := map[string]struct {
		record string
		want   error
	}{
		"malformed":    {`{"data": {"k": "v"}}`, transform.ErrMalformedRecord},
		"missing":      {`{"data": [["validity__siteInspectionDate", "01/02/25"]]}`, transform.ErrMissingField},
		"invalid date": {strings.Replace(validRecord, "01/02/25", "2025-01-02", 1), transform.ErrInvalidDate},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.write(t, "inbox/LEAD3.json", tc.record)
			_, err := f.runner.Run(context.Background(), Job{InboxKey: "LEAD3.json", PDF: f.pdf, Images: f.images})
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
			assertNothingWritten(t, f)
			if items, _ := f.box.List(context.Background()); len(items) != 1 {
				t.Errorf("failed input must stay in the inbox, got %v", items)
			}
		})
	}
}

func TestRun_UnknownCategoryIsLogged(t *testing.T) {
	f := newFixture(t)
	record := f.write(t, "LEAD5.json", validRecord)
	imgs := append(f.images, manifest.Image{Path: f.images[0].Path, Category: "roof"})

	if _, err := f.runner.Run(context.Background(), Job{Record: record, PDF: f.pdf, Images: imgs}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(f.logs.String(), "level=WARN") || !strings.Contains(f.logs.String(), "roof") {
		t.Errorf("expected a warning naming the category:\n%s", f.logs)
	}
}

type failingRemove struct {
	*inbox.Dir
}

func (failingRemove) Remove(context.Context, string) error {
	return errors.New("bucket is read-only")
}

func TestRun_RemoveFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.write(t, "inbox/LEAD8.json", validRecord)
	f.runner.Inbox = failingRemove{f.box}

	conv, err := f.runner.Run(context.Background(), Job{InboxKey: "LEAD8.json", PDF: f.pdf, Images: f.images})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(conv.OutputPath); err != nil {
		t.Errorf("output missing: %v", err)
	}
	logs := f.logs.String()
	if !strings.Contains(logs, "remove converted record") || !strings.Contains(logs, "bucket is read-only") {
		t.Errorf("expected a removal warning:\n%s", logs)
	}
}

func assertNothingWritten(t *testing.T, f *fixture) {
	t.Helper()
	entries, _ := os.ReadDir(f.runner.Outbox.Root)
	if len(entries) != 0 {
		t.Errorf("outbox holds %d files after a failed job", len(entries))
	}
	if list, _ := f.store.List(store.ListOptions{}); len(list) != 0 {
		t.Errorf("ledger holds %d entries after a failed job", len(list))
	}
}
