// Package fetch retrieves selected recordings onto disk. Classification and
// selection are already complete by the time a fetch run starts; this package
// only pairs each entry with its derived destination, streams bytes, and
// isolates per-entry failures so one bad transfer never aborts the run.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"camctl/internal/catalog"
	"camctl/internal/layout"
	"camctl/internal/ledger"
	"camctl/internal/logging"
	"camctl/internal/services"
)

// Downloader is the byte-transfer collaborator, satisfied by camera.Client.
type Downloader interface {
	Download(ctx context.Context, source string) (io.ReadCloser, int64, error)
}

// Item pairs one selected entry with its derived destination.
type Item struct {
	Entry      catalog.Entry
	Descriptor layout.Descriptor
	DestPath   string
}

// Plan derives the destination for every entry under the output root,
// preserving order. Pure; no filesystem access.
func Plan(entries []catalog.Entry, outputDir string) []Item {
	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		desc := layout.Derive(entry)
		items = append(items, Item{
			Entry:      entry,
			Descriptor: desc,
			DestPath:   desc.Path(outputDir),
		})
	}
	return items
}

// Summary reports the outcome of one fetch run.
type Summary struct {
	RunID      string
	Downloaded int
	Skipped    int
	Failed     int
}

// Fetcher downloads planned items into the output directory.
type Fetcher struct {
	downloader Downloader
	history    *ledger.Store
	logger     *slog.Logger
	outputDir  string
	progress   bool
}

// New constructs a fetcher. history may be nil to disable recording.
func New(downloader Downloader, history *ledger.Store, logger *slog.Logger, outputDir string, progress bool) *Fetcher {
	return &Fetcher{
		downloader: downloader,
		history:    history,
		logger:     logging.WithComponent(logger, "fetch"),
		outputDir:  outputDir,
		progress:   progress,
	}
}

// Run transfers every item. A file already present at the derived path counts
// as satisfied and is skipped; a failed transfer removes its partial file,
// increments the failure count and moves on. Only a lock conflict or an
// unusable output directory fails the run as a whole.
func (f *Fetcher) Run(ctx context.Context, items []Item) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	logger := f.logger.With(logging.String(logging.FieldRunID, summary.RunID))

	if err := os.MkdirAll(f.outputDir, 0o755); err != nil {
		return summary, services.Wrap(services.ErrConfiguration, "fetch", "prepare output", "cannot create output directory", err)
	}

	lock := flock.New(filepath.Join(f.outputDir, ".camctl.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return summary, services.Wrap(services.ErrTransient, "fetch", "lock output", "cannot acquire output directory lock", err)
	}
	if !locked {
		return summary, services.Wrap(services.ErrTransient, "fetch", "lock output",
			fmt.Sprintf("another run is writing to %s", f.outputDir), nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release output lock", logging.Error(err))
		}
	}()

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		position := fmt.Sprintf("%d/%d", i+1, len(items))

		if _, err := os.Stat(item.DestPath); err == nil {
			logger.Info("already downloaded, skipping",
				logging.String("position", position),
				logging.String("dest", item.DestPath))
			summary.Skipped++
			continue
		}

		if err := f.fetchOne(ctx, item); err != nil {
			summary.Failed++
			logger.Warn("download failed",
				logging.String("position", position),
				logging.String("source", item.Entry.Source),
				logging.Error(err))
			continue
		}
		summary.Downloaded++
		logger.Info("saved recording",
			logging.String("position", position),
			logging.String("dest", item.DestPath),
			logging.Duration("clip", item.Entry.Duration()))

		if f.history != nil {
			row := ledger.Row{
				RunID:        summary.RunID,
				Source:       item.Entry.Source,
				DestPath:     item.DestPath,
				TriggerNames: strings.Join(item.Entry.Triggers.Names(), ","),
				StartedAt:    item.Entry.Start,
				EndedAt:      item.Entry.End,
				SizeBytes:    fileSize(item.DestPath),
			}
			if err := f.history.Record(ctx, row); err != nil {
				logger.Warn("failed to record download history", logging.Error(err))
			}
		}
	}

	return summary, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, item Item) error {
	if err := os.MkdirAll(filepath.Dir(item.DestPath), 0o755); err != nil {
		return fmt.Errorf("create date directory: %w", err)
	}

	body, size, err := f.downloader.Download(ctx, item.Entry.Source)
	if err != nil {
		return err
	}
	defer body.Close()

	dest, err := os.OpenFile(item.DestPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			// Raced with another writer; the file being there is satisfaction
			// enough.
			return nil
		}
		return fmt.Errorf("create destination: %w", err)
	}

	var sink io.Writer = dest
	var bar *progressbar.ProgressBar
	if f.progress {
		bar = progressbar.DefaultBytes(size, item.Descriptor.Filename)
		sink = io.MultiWriter(dest, bar)
	}

	_, copyErr := io.Copy(sink, body)
	closeErr := dest.Close()
	if bar != nil {
		_ = bar.Finish()
	}
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(item.DestPath)
		if copyErr != nil {
			return fmt.Errorf("stream recording: %w", copyErr)
		}
		return fmt.Errorf("finalize recording: %w", closeErr)
	}
	return nil
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
