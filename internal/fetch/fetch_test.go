package fetch_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"camctl/internal/catalog"
	"camctl/internal/fetch"
	"camctl/internal/ledger"
	"camctl/internal/logging"
	"camctl/internal/trigger"
)

type stubDownloader struct {
	payloads map[string]string
	failures map[string]error
	calls    []string
}

func (s *stubDownloader) Download(_ context.Context, source string) (io.ReadCloser, int64, error) {
	s.calls = append(s.calls, source)
	if err, ok := s.failures[source]; ok {
		return nil, 0, err
	}
	payload := s.payloads[source]
	return io.NopCloser(strings.NewReader(payload)), int64(len(payload)), nil
}

func entryFor(hour int, source string, triggers trigger.Set) catalog.Entry {
	start := time.Date(2023, 5, 15, hour, 0, 0, 0, time.Local)
	return catalog.Entry{Start: start, End: start.Add(time.Minute), Triggers: triggers, Source: source}
}

func TestPlanDerivesDestinations(t *testing.T) {
	entries := []catalog.Entry{entryFor(10, "a.mp4", trigger.Person)}
	items := fetch.Plan(entries, "/out")
	if len(items) != 1 {
		t.Fatalf("items = %d", len(items))
	}
	want := filepath.Join("/out", "2023-05-15", "person_100000_100100.mp4")
	if items[0].DestPath != want {
		t.Fatalf("dest = %q, want %q", items[0].DestPath, want)
	}
}

func TestRunDownloadsAndRecords(t *testing.T) {
	outputDir := t.TempDir()
	store, err := ledger.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	defer store.Close()

	dl := &stubDownloader{payloads: map[string]string{"a.mp4": "AAAA", "b.mp4": "BBBBBB"}}
	fetcher := fetch.New(dl, store, logging.NewNop(), outputDir, false)

	items := fetch.Plan([]catalog.Entry{
		entryFor(10, "a.mp4", trigger.Person),
		entryFor(11, "b.mp4", trigger.Motion),
	}, outputDir)

	summary, err := fetcher.Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Downloaded != 2 || summary.Failed != 0 || summary.Skipped != 0 {
		t.Fatalf("summary = %+v", summary)
	}

	data, err := os.ReadFile(filepath.Join(outputDir, "2023-05-15", "person_100000_100100.mp4"))
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != "AAAA" {
		t.Fatalf("payload = %q", data)
	}

	rows, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(rows))
	}
	if rows[0].RunID != summary.RunID {
		t.Fatalf("run id mismatch: %q vs %q", rows[0].RunID, summary.RunID)
	}
}

func TestRunSkipsExistingFiles(t *testing.T) {
	outputDir := t.TempDir()
	entry := entryFor(10, "a.mp4", trigger.Person)
	items := fetch.Plan([]catalog.Entry{entry}, outputDir)

	if err := os.MkdirAll(filepath.Dir(items[0].DestPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(items[0].DestPath, []byte("existing"), 0o644); err != nil {
		t.Fatalf("write existing: %v", err)
	}

	dl := &stubDownloader{payloads: map[string]string{"a.mp4": "new"}}
	fetcher := fetch.New(dl, nil, logging.NewNop(), outputDir, false)
	summary, err := fetcher.Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Skipped != 1 || summary.Downloaded != 0 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(dl.calls) != 0 {
		t.Fatal("existing file must not be re-downloaded")
	}
	data, _ := os.ReadFile(items[0].DestPath)
	if string(data) != "existing" {
		t.Fatal("existing file must not be overwritten")
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	outputDir := t.TempDir()
	dl := &stubDownloader{
		payloads: map[string]string{"ok.mp4": "fine"},
		failures: map[string]error{"bad.mp4": errors.New("connection reset")},
	}
	fetcher := fetch.New(dl, nil, logging.NewNop(), outputDir, false)

	items := fetch.Plan([]catalog.Entry{
		entryFor(9, "bad.mp4", trigger.Motion),
		entryFor(10, "ok.mp4", trigger.Person),
	}, outputDir)

	summary, err := fetcher.Run(context.Background(), items)
	if err != nil {
		t.Fatalf("one failed transfer must not abort the run: %v", err)
	}
	if summary.Failed != 1 || summary.Downloaded != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if _, err := os.Stat(items[1].DestPath); err != nil {
		t.Fatalf("successful entry missing: %v", err)
	}
}

func TestRunRemovesPartialFileOnStreamError(t *testing.T) {
	outputDir := t.TempDir()
	dl := &brokenStreamDownloader{}
	fetcher := fetch.New(dl, nil, logging.NewNop(), outputDir, false)
	items := fetch.Plan([]catalog.Entry{entryFor(10, "a.mp4", trigger.Person)}, outputDir)

	summary, err := fetcher.Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Failed != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if _, err := os.Stat(items[0].DestPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("partial file must be removed, stat err = %v", err)
	}
}

type brokenStreamDownloader struct{}

func (brokenStreamDownloader) Download(context.Context, string) (io.ReadCloser, int64, error) {
	return io.NopCloser(&failingReader{}), 100, nil
}

type failingReader struct{ n int }

func (r *failingReader) Read(p []byte) (int, error) {
	if r.n == 0 {
		r.n++
		p[0] = 'x'
		return 1, nil
	}
	return 0, errors.New("stream interrupted")
}
