package period

import (
	"testing"
	"time"

	"crm-engine/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func terminated(sub, term time.Time) *model.HistoryRecord {
	return &model.HistoryRecord{Subscription: sub, Termination: &term, Edition: term}
}

func TestSegmentFirstPeriodEndsTwoMonthsBeforeAnniversary(t *testing.T) {
	rec := &model.HistoryRecord{Subscription: date(2020, 1, 1), Edition: date(2023, 1, 1)}
	periods := Segment(rec, 0, date(2023, 6, 1))

	if len(periods) != 4 {
		t.Fatalf("expected 4 periods, got %d", len(periods))
	}
	first := periods[0]
	if !first.End.Equal(date(2020, 11, 1)) {
		t.Fatalf("first period end: got %v", first.End)
	}
	if first.DurationMonths != 10 || !first.Complete {
		t.Fatalf("first period: %+v", first)
	}
	// later periods span full years
	if !periods[1].End.Equal(date(2021, 11, 1)) || periods[1].DurationMonths != 12 {
		t.Fatalf("second period: %+v", periods[1])
	}
	// the running tail is cut by the reference date and is not final
	tail := periods[3]
	if tail.Complete || tail.FinalPartial {
		t.Fatalf("tail period: %+v", tail)
	}
	if !tail.End.Equal(date(2023, 6, 1)) {
		t.Fatalf("tail end: got %v", tail.End)
	}
}

func TestSegmentTerminationMarksFinalPartial(t *testing.T) {
	rec := terminated(date(2020, 1, 1), date(2020, 10, 1))
	periods := Segment(rec, 0, date(2021, 6, 1))

	if len(periods) != 1 {
		t.Fatalf("expected 1 period, got %d", len(periods))
	}
	p := periods[0]
	if !p.FinalPartial || p.Complete {
		t.Fatalf("period flags: %+v", p)
	}
	if p.DurationMonths != 9 {
		t.Fatalf("duration: got %d", p.DurationMonths)
	}
}

func TestSegmentTerminationOnBoundary(t *testing.T) {
	rec := terminated(date(2020, 1, 1), date(2020, 11, 1))
	periods := Segment(rec, 0, date(2021, 6, 1))

	if len(periods) != 1 {
		t.Fatalf("expected 1 period, got %d", len(periods))
	}
	p := periods[0]
	if !p.FinalPartial || !p.Complete || p.DurationMonths != 10 {
		t.Fatalf("period: %+v", p)
	}
}

func TestSegmentReferenceBeforeSubscription(t *testing.T) {
	rec := &model.HistoryRecord{Subscription: date(2024, 1, 1), Edition: date(2024, 1, 1)}
	if periods := Segment(rec, 0, date(2023, 6, 1)); periods != nil {
		t.Fatalf("expected no periods, got %d", len(periods))
	}
}

func TestSegmentFutureTerminationIgnored(t *testing.T) {
	rec := terminated(date(2020, 1, 1), date(2030, 1, 1))
	periods := Segment(rec, 0, date(2021, 6, 1))

	last := periods[len(periods)-1]
	if last.FinalPartial {
		t.Fatal("a termination beyond the reference date must not mark a final partial period")
	}
}

func TestMonthsBetween(t *testing.T) {
	cases := []struct {
		start, end time.Time
		want       int
	}{
		{date(2020, 1, 1), date(2020, 11, 1), 10},
		{date(2020, 1, 1), date(2020, 10, 1), 9},
		{date(2020, 1, 15), date(2020, 3, 14), 1},
		{date(2020, 1, 1), date(2021, 1, 1), 12},
		{date(2020, 1, 1), date(2020, 1, 20), 0},
	}
	for _, c := range cases {
		if got := monthsBetween(c.start, c.end); got != c.want {
			t.Errorf("monthsBetween(%v, %v): got %d, want %d", c.start, c.end, got, c.want)
		}
	}
}
