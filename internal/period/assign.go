package period

import (
	"sort"
	"time"

	"crm-engine/internal/model"
)

// Assign places each claim into the period containing its date. A claim
// falling within the last deferralMonths of its period is recognized in
// the following period instead, reflecting the lag between a loss and its
// administrative assessment; the final period of a record keeps its late
// claims, there being no later window at the same insurer. Claims dated
// outside every period are clamped into the nearest one so they always
// count. Claims end up sorted by date within each period; order matters
// because the majorations compound.
func Assign(periods []AssessmentPeriod, claims []model.ClaimRecord, deferralMonths int) {
	if len(periods) == 0 {
		return
	}
	for _, c := range claims {
		i := locate(periods, c.Date)
		if i+1 < len(periods) && !c.Date.Before(deferralThreshold(periods[i], deferralMonths)) {
			i++
		}
		periods[i].Claims = append(periods[i].Claims, c)
	}
	for i := range periods {
		cs := periods[i].Claims
		sort.SliceStable(cs, func(a, b int) bool { return cs[a].Date.Before(cs[b].Date) })
	}
}

func deferralThreshold(p AssessmentPeriod, deferralMonths int) time.Time {
	return p.End.AddDate(0, -deferralMonths, 0)
}

// locate finds the first period whose end lies beyond d; dates beyond the
// last period map to the last one.
func locate(periods []AssessmentPeriod, d time.Time) int {
	for i := range periods {
		if d.Before(periods[i].End) {
			return i
		}
	}
	return len(periods) - 1
}
