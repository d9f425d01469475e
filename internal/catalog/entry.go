// Package catalog turns raw recording index entries reported by a camera into
// canonical, codec-independent catalog entries. The camera embeds the
// detection triggers that caused each recording inside the on-camera file
// name, in one of two incompatible layouts depending on firmware generation;
// this package owns the decode chain that reconciles both into one trigger
// set per recording.
package catalog

import (
	"errors"
	"time"

	"camctl/internal/trigger"
)

// RawEntry is one row of the camera's recording index, as returned by the
// search call: a time span, a size, and the on-camera file name that doubles
// as the download locator and the trigger-encoding payload.
type RawEntry struct {
	Name  string
	Start time.Time
	End   time.Time
	// Length is the camera-reported clip length. Used to derive End when the
	// camera omits it; ignored otherwise.
	Length time.Duration
	Size   int64
}

// Entry is the canonical representation of one recording. Immutable once
// constructed; everything downstream (selection, naming, download) operates
// on it.
type Entry struct {
	Start    time.Time
	End      time.Time
	Triggers trigger.Set
	// Source is the opaque locator the download collaborator passes back to
	// the camera. Never interpreted beyond trigger decoding.
	Source string
	Size   int64
}

// Duration is the clip length derived from the time span. Zero-duration
// recordings are legal degenerate clips.
func (e Entry) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

var errNoTimeSpan = errors.New("recording index entry has no usable time span")

// Decode builds a catalog entry from a raw index entry. The trigger set is
// decoded from the entry's file name; an unrecognized encoding yields the
// empty set, never an error. An error is returned only when the time span
// cannot be extracted at all, in which case the caller should skip the entry
// and move on.
func Decode(raw RawEntry) (Entry, error) {
	start, end := raw.Start, raw.End
	if end.IsZero() && raw.Length > 0 {
		end = start.Add(raw.Length)
	}
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return Entry{}, errNoTimeSpan
	}
	return Entry{
		Start:    start,
		End:      end,
		Triggers: DecodeTriggers(raw.Name),
		Source:   raw.Name,
		Size:     raw.Size,
	}, nil
}

// Skip records one raw entry that could not be decoded into a catalog entry.
type Skip struct {
	Name   string
	Reason string
}

// DecodeBatch decodes every raw entry, collecting the skipped ones instead of
// failing the batch. The returned entries preserve the input order.
func DecodeBatch(raws []RawEntry) ([]Entry, []Skip) {
	entries := make([]Entry, 0, len(raws))
	var skipped []Skip
	for _, raw := range raws {
		entry, err := Decode(raw)
		if err != nil {
			skipped = append(skipped, Skip{Name: raw.Name, Reason: err.Error()})
			continue
		}
		entries = append(entries, entry)
	}
	return entries, skipped
}
