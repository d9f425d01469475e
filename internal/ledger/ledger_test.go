package ledger_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"camctl/internal/ledger"
)

func openStore(t *testing.T) *ledger.Store {
	t.Helper()
	store, err := ledger.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2023, 5, 15, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		err := store.Record(ctx, ledger.Row{
			RunID:        "run-1",
			Source:       "Mp4Record/clip.mp4",
			DestPath:     "/downloads/2023-05-15/person_100000_100100.mp4",
			TriggerNames: "person",
			StartedAt:    base,
			EndedAt:      base.Add(time.Minute),
			SizeBytes:    1024,
			DownloadedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	rows, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !rows[0].DownloadedAt.After(rows[1].DownloadedAt) {
		t.Fatalf("rows not newest first: %v then %v", rows[0].DownloadedAt, rows[1].DownloadedAt)
	}
	if rows[0].ID == "" {
		t.Fatal("expected allocated row ID")
	}
}

func TestRecentOnEmptyStore(t *testing.T) {
	store := openStore(t)
	rows, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "history.db")
	store, err := ledger.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	store.Close()
}
