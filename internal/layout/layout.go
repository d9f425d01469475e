// Package layout derives deterministic local destinations for classified
// recordings. The derived path doubles as the idempotency key for downloads:
// a file already present at the destination means the recording is already
// satisfied.
package layout

import (
	"fmt"
	"path/filepath"

	"camctl/internal/catalog"
)

// Extension is appended to every derived filename. Recordings are fetched as
// MP4 containers regardless of the on-camera name.
const Extension = ".mp4"

// Descriptor is a destination for one recording: a calendar-date directory
// segment and a filename encoding the primary trigger and the exact clip
// span.
type Descriptor struct {
	// Dir is the date segment, YYYY-MM-DD in the entry's start-time zone.
	Dir string
	// Filename is <trigger>_<start HHMMSS>_<end HHMMSS>.mp4.
	Filename string
}

// Path joins the descriptor under the given output root.
func (d Descriptor) Path(root string) string {
	return filepath.Join(root, d.Dir, d.Filename)
}

// Derive maps an entry to its destination. Pure function; two entries sharing
// identical start and end times but different trigger sets may derive
// colliding names, which callers resolve through the already-present-skip
// policy rather than disambiguation.
func Derive(entry catalog.Entry) Descriptor {
	return Descriptor{
		Dir: entry.Start.Format("2006-01-02"),
		Filename: fmt.Sprintf("%s_%s_%s%s",
			entry.Triggers.Primary(),
			entry.Start.Format("150405"),
			entry.End.Format("150405"),
			Extension,
		),
	}
}
