package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"camctl/internal/camera"
	"camctl/internal/catalog"
	"camctl/internal/config"
	"camctl/internal/logging"
	"camctl/internal/selection"
	"camctl/internal/timerange"
	"camctl/internal/trigger"
)

// selectionFlags is the flag surface shared by the download and list
// commands: which triggers, which window, how many.
type selectionFlags struct {
	person   bool
	vehicle  bool
	animal   bool
	face     bool
	doorbell bool
	motion   bool
	all      bool

	date  string
	from  string
	to    string
	since string

	latest    int
	latestSet bool
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVar(&f.person, "person", false, "Person detection")
	flags.BoolVar(&f.vehicle, "vehicle", false, "Vehicle detection")
	flags.BoolVar(&f.animal, "animal", false, "Animal detection")
	flags.BoolVar(&f.face, "face", false, "Face detection")
	flags.BoolVar(&f.doorbell, "doorbell", false, "Doorbell press")
	flags.BoolVar(&f.motion, "motion", false, "Generic motion detection")
	flags.BoolVar(&f.all, "all", false, "All trigger types (default when no trigger flag is given)")

	flags.StringVar(&f.date, "date", "", "Specific date: YYYY-MM-DD, today, yesterday")
	flags.StringVar(&f.from, "from", "", "Range start date: YYYY-MM-DD")
	flags.StringVar(&f.to, "to", "", "Range end date: YYYY-MM-DD")
	flags.StringVar(&f.since, "since", "", "Relative period: 30m, 2h, 3d")

	flags.IntVar(&f.latest, "latest", 0, "Limit to the N most recent recordings")
}

// window resolves the time-selection flags, defaulting to today.
func (f *selectionFlags) window(now time.Time) (timerange.Window, error) {
	if (f.from != "") != (f.to != "") {
		return timerange.Window{}, errors.New("--from and --to must be used together")
	}
	if f.since != "" && (f.date != "" || f.from != "") {
		return timerange.Window{}, errors.New("--since cannot be combined with --date or --from/--to")
	}
	if f.since != "" {
		return timerange.ParseSince(f.since, now)
	}
	if f.from != "" {
		return timerange.ParseRange(f.from, f.to, now.Location())
	}
	date := f.date
	if date == "" {
		date = "today"
	}
	return timerange.ParseDate(date, now)
}

// criteria builds the selection criteria from the flags.
func (f *selectionFlags) criteria(cmd *cobra.Command, window timerange.Window) selection.Criteria {
	criteria := selection.Criteria{
		Predicate:   f.predicate(),
		WindowStart: window.Start,
		WindowEnd:   window.End,
	}
	if cmd.Flags().Changed("latest") {
		limit := f.latest
		criteria.Limit = &limit
	}
	return criteria
}

func (f *selectionFlags) predicate() selection.Predicate {
	if f.all {
		return selection.Unfiltered()
	}
	set := trigger.None
	if f.person {
		set = set.With(trigger.Person)
	}
	if f.vehicle {
		set = set.With(trigger.Vehicle)
	}
	if f.animal {
		set = set.With(trigger.Animal)
	}
	if f.face {
		set = set.With(trigger.Face)
	}
	if f.doorbell {
		set = set.With(trigger.Doorbell)
	}
	if f.motion {
		set = set.With(trigger.Motion)
	}
	// No flags selected means no filter.
	return selection.AnyOf(set)
}

// collectRecordings searches the device index over the window, classifies the
// raw entries, reports skipped ones, and applies the selection criteria.
func collectRecordings(ctx context.Context, client *camera.Client, cfg *config.Config, logger *slog.Logger, window timerange.Window, criteria selection.Criteria) ([]catalog.Entry, []catalog.Skip, error) {
	raws, err := client.Search(ctx, cfg.Camera.Channel, cfg.Download.Stream, window)
	if err != nil {
		return nil, nil, err
	}

	entries, skipped := catalog.DecodeBatch(raws)
	for _, skip := range skipped {
		logger.Warn("skipping recording index entry",
			logging.String("name", skip.Name),
			logging.String("reason", skip.Reason))
	}

	selected, err := selection.Select(entries, criteria)
	if err != nil {
		return nil, nil, err
	}
	return selected, skipped, nil
}
