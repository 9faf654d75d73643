// Package validate holds the advisory cross-checks run on a computed
// result. Both checks annotate; neither ever blocks a computation.
package validate

import (
	"time"

	"crm-engine/internal/config"
	"crm-engine/internal/model"
)

// Staleness flags whether the most recent document is fresh enough to
// trust, and reports its age in days.
func Staleness(hist *model.InsuranceHistory, referenceDate time.Time, cfg *config.Engine) (string, int) {
	latest := hist.Latest()
	staleDays := int(referenceDate.Sub(latest.Edition).Hours() / 24)
	if staleDays > cfg.StaleAfterDays {
		return model.StalenessStale, staleDays
	}
	return model.StalenessFresh, staleDays
}
