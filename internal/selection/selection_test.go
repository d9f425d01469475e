package selection_test

import (
	"errors"
	"testing"
	"time"

	"camctl/internal/catalog"
	"camctl/internal/selection"
	"camctl/internal/services"
	"camctl/internal/trigger"
)

var day = time.Date(2023, 5, 15, 0, 0, 0, 0, time.Local)

func entryAt(hour int, triggers trigger.Set) catalog.Entry {
	start := day.Add(time.Duration(hour) * time.Hour)
	return catalog.Entry{
		Start:    start,
		End:      start.Add(time.Minute),
		Triggers: triggers,
		Source:   start.Format("150405") + ".mp4",
	}
}

func fullDay() (time.Time, time.Time) {
	return day, day.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}

func intPtr(v int) *int { return &v }

func TestSelectORSemantics(t *testing.T) {
	entries := []catalog.Entry{
		entryAt(8, trigger.Person),
		entryAt(9, trigger.Motion),
		entryAt(10, trigger.Person|trigger.Motion),
	}
	ws, we := fullDay()
	got, err := selection.Select(entries, selection.Criteria{
		Predicate:   selection.AnyOf(trigger.Person | trigger.Vehicle),
		WindowStart: ws,
		WindowEnd:   we,
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].Start.Hour() != 8 || got[1].Start.Hour() != 10 {
		t.Fatalf("matches out of order: %v, %v", got[0].Start, got[1].Start)
	}
}

func TestSelectEmptyPredicateEqualsUnfiltered(t *testing.T) {
	entries := []catalog.Entry{
		entryAt(8, trigger.Person),
		entryAt(9, trigger.None),
	}
	ws, we := fullDay()

	unfiltered, err := selection.Select(entries, selection.Criteria{
		Predicate: selection.Unfiltered(), WindowStart: ws, WindowEnd: we,
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	empty, err := selection.Select(entries, selection.Criteria{
		Predicate: selection.AnyOf(trigger.None), WindowStart: ws, WindowEnd: we,
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	if len(unfiltered) != 2 || len(empty) != 2 {
		t.Fatalf("no flags selected must mean no filter: %d vs %d", len(unfiltered), len(empty))
	}
}

func TestSelectUntaggedEntryOnlyMatchesUnfiltered(t *testing.T) {
	entries := []catalog.Entry{entryAt(8, trigger.None)}
	ws, we := fullDay()
	got, err := selection.Select(entries, selection.Criteria{
		Predicate: selection.AnyOf(trigger.Person), WindowStart: ws, WindowEnd: we,
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got) != 0 {
		t.Fatal("empty trigger set must not match a filtered predicate")
	}
}

func TestSelectWindowInclusivity(t *testing.T) {
	windowEnd := day.Add(12 * time.Hour)
	atEnd := catalog.Entry{Start: windowEnd, End: windowEnd.Add(time.Minute)}
	oneTickAfter := catalog.Entry{Start: windowEnd.Add(time.Second), End: windowEnd.Add(time.Minute)}
	atStart := catalog.Entry{Start: day, End: day.Add(time.Minute)}

	got, err := selection.Select([]catalog.Entry{atStart, atEnd, oneTickAfter}, selection.Criteria{
		Predicate: selection.Unfiltered(), WindowStart: day, WindowEnd: windowEnd,
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected boundary entries included and later entry excluded, got %d", len(got))
	}
}

func TestSelectWindowEvaluatesStartOnly(t *testing.T) {
	windowEnd := day.Add(10 * time.Hour)
	spansPastEnd := catalog.Entry{Start: windowEnd.Add(-time.Minute), End: windowEnd.Add(2 * time.Hour)}
	got, err := selection.Select([]catalog.Entry{spansPastEnd}, selection.Criteria{
		Predicate: selection.Unfiltered(), WindowStart: day, WindowEnd: windowEnd,
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got) != 1 {
		t.Fatal("entry extending past the window end must still qualify by start time")
	}
}

func TestSelectRecencyCap(t *testing.T) {
	// Input deliberately unordered.
	entries := []catalog.Entry{
		entryAt(10, trigger.Motion),
		entryAt(8, trigger.Motion),
		entryAt(12, trigger.Motion),
	}
	ws, we := fullDay()
	got, err := selection.Select(entries, selection.Criteria{
		Predicate: selection.Unfiltered(), WindowStart: ws, WindowEnd: we, Limit: intPtr(2),
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got) != 2 || got[0].Start.Hour() != 12 || got[1].Start.Hour() != 10 {
		t.Fatalf("expected [12h, 10h] most recent first, got %+v", got)
	}
}

func TestSelectRecencyCapStableTies(t *testing.T) {
	a := entryAt(9, trigger.Person)
	a.Source = "first.mp4"
	b := entryAt(9, trigger.Motion)
	b.Source = "second.mp4"
	ws, we := fullDay()
	got, err := selection.Select([]catalog.Entry{a, b}, selection.Criteria{
		Predicate: selection.Unfiltered(), WindowStart: ws, WindowEnd: we, Limit: intPtr(2),
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got[0].Source != "first.mp4" || got[1].Source != "second.mp4" {
		t.Fatalf("ties must keep catalog order, got %q then %q", got[0].Source, got[1].Source)
	}
}

func TestSelectZeroLimitYieldsEmpty(t *testing.T) {
	ws, we := fullDay()
	got, err := selection.Select([]catalog.Entry{entryAt(8, trigger.Person)}, selection.Criteria{
		Predicate: selection.Unfiltered(), WindowStart: ws, WindowEnd: we, Limit: intPtr(0),
	})
	if err != nil {
		t.Fatalf("limit 0 is not an error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestSelectRejectsInvalidCriteria(t *testing.T) {
	ws, we := fullDay()

	_, err := selection.Select(nil, selection.Criteria{WindowStart: we, WindowEnd: ws})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("inverted window must be a validation error, got %v", err)
	}

	_, err = selection.Select(nil, selection.Criteria{WindowStart: ws, WindowEnd: we, Limit: intPtr(-1)})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("negative limit must be a validation error, got %v", err)
	}
}

func TestSelectWithoutLimitPreservesCatalogOrder(t *testing.T) {
	entries := []catalog.Entry{
		entryAt(12, trigger.Motion),
		entryAt(8, trigger.Motion),
		entryAt(10, trigger.Motion),
	}
	ws, we := fullDay()
	got, err := selection.Select(entries, selection.Criteria{
		Predicate: selection.Unfiltered(), WindowStart: ws, WindowEnd: we,
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	hours := []int{got[0].Start.Hour(), got[1].Start.Hour(), got[2].Start.Hour()}
	if hours[0] != 12 || hours[1] != 8 || hours[2] != 10 {
		t.Fatalf("upstream order must be preserved, got %v", hours)
	}
}
