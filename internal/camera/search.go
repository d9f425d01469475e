package camera

import (
	"context"
	"time"

	"camctl/internal/catalog"
	"camctl/internal/services"
	"camctl/internal/timerange"
)

// apiTime is the device's exploded timestamp representation.
type apiTime struct {
	Year int `json:"year"`
	Mon  int `json:"mon"`
	Day  int `json:"day"`
	Hour int `json:"hour"`
	Min  int `json:"min"`
	Sec  int `json:"sec"`
}

func toAPITime(t time.Time) apiTime {
	return apiTime{
		Year: t.Year(), Mon: int(t.Month()), Day: t.Day(),
		Hour: t.Hour(), Min: t.Minute(), Sec: t.Second(),
	}
}

// toTime converts back into a timestamp in loc. The zero apiTime yields the
// zero time so missing fields surface as an unextractable span downstream.
func (a apiTime) toTime(loc *time.Location) time.Time {
	if a.Year == 0 {
		return time.Time{}
	}
	return time.Date(a.Year, time.Month(a.Mon), a.Day, a.Hour, a.Min, a.Sec, 0, loc)
}

type indexFile struct {
	Name      string  `json:"name"`
	StartTime apiTime `json:"StartTime"`
	EndTime   apiTime `json:"EndTime"`
	Size      int64   `json:"size"`
	Type      string  `json:"type"`
}

// Search queries the on-device recording index for the given channel, stream
// and window, returning raw entries for the classification core. Entries come
// back in the device's order, ascending by start time.
func (c *Client) Search(ctx context.Context, channel int, stream string, window timerange.Window) ([]catalog.RawEntry, error) {
	param := map[string]any{
		"Search": map[string]any{
			"channel":    channel,
			"onlyStatus": 0,
			"streamType": stream,
			"StartTime":  toAPITime(window.Start),
			"EndTime":    toAPITime(window.End),
		},
	}
	var value struct {
		SearchResult struct {
			Channel int         `json:"channel"`
			File    []indexFile `json:"File"`
		} `json:"SearchResult"`
	}
	if err := c.call(ctx, "Search", param, &value); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "camera", "search", "recording index query failed", err)
	}

	loc := window.Start.Location()
	raws := make([]catalog.RawEntry, 0, len(value.SearchResult.File))
	for _, file := range value.SearchResult.File {
		raws = append(raws, catalog.RawEntry{
			Name:  file.Name,
			Start: file.StartTime.toTime(loc),
			End:   file.EndTime.toTime(loc),
			Size:  file.Size,
		})
	}
	return raws, nil
}
