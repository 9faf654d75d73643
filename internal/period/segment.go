// Package period turns a record's lifespan into the ordered annual
// assessment periods the engine walks, and places claims into them.
package period

import (
	"time"

	"crm-engine/internal/model"
)

// The assessment window closes two months before the contract anniversary
// (période de référence).
const statutoryLagMonths = 2

// AssessmentPeriod is one assessment window of one record. Derived, never
// stored. End is exclusive.
type AssessmentPeriod struct {
	Start          time.Time
	End            time.Time
	Claims         []model.ClaimRecord
	DurationMonths int

	// Complete is true when the period reached its nominal annual
	// boundary rather than being cut short.
	Complete bool

	// FinalPartial marks the last period of a record that ended via
	// termination rather than running on to the reference date.
	FinalPartial bool

	RecordIndex int
}

// Segment splits one record into assessment periods, truncated at the
// termination date or the reference date, whichever comes first. The first
// period runs from subscription to the first anniversary minus the
// statutory lag; every later one spans a full year.
func Segment(rec *model.HistoryRecord, idx int, referenceDate time.Time) []AssessmentPeriod {
	horizon := referenceDate
	terminated := false
	if rec.Termination != nil && !rec.Termination.After(referenceDate) {
		horizon = *rec.Termination
		terminated = true
	}
	if !rec.Subscription.Before(horizon) {
		return nil
	}

	var periods []AssessmentPeriod
	start := rec.Subscription
	nominalEnd := rec.Subscription.AddDate(1, 0, 0).AddDate(0, -statutoryLagMonths, 0)
	for start.Before(horizon) {
		end := nominalEnd
		complete := true
		if end.After(horizon) {
			end = horizon
			complete = false
		}
		periods = append(periods, AssessmentPeriod{
			Start:          start,
			End:            end,
			DurationMonths: monthsBetween(start, end),
			Complete:       complete,
			RecordIndex:    idx,
		})
		if !complete {
			break
		}
		start = end
		nominalEnd = nominalEnd.AddDate(1, 0, 0)
	}
	if terminated && len(periods) > 0 {
		periods[len(periods)-1].FinalPartial = true
	}
	return periods
}

// monthsBetween counts whole elapsed months from start to end.
func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
