package validate

import (
	"fmt"
	"time"

	"crm-engine/internal/config"
	"crm-engine/internal/model"
)

// Consistency cross-checks the computed coefficient against the primary
// driver's licensure age: a driver licensed for fewer than the young-license
// window cannot plausibly sit below the young floor. The computed value is
// flagged, never overridden. Without a primary license date the check has
// nothing to say and reports OK.
func Consistency(hist *model.InsuranceHistory, value float64, referenceDate time.Time, cfg *config.Engine) (string, string) {
	primary := hist.PrimaryDriver()
	if primary == nil || primary.LicenseDate == nil {
		return model.ConsistencyOK, ""
	}
	licensedSince := *primary.LicenseDate
	if !licensedSince.AddDate(cfg.YoungLicenseYears, 0, 0).After(referenceDate) {
		return model.ConsistencyOK, ""
	}
	if value < cfg.YoungFloor || value > cfg.Ceiling {
		return model.ConsistencySuspicious, fmt.Sprintf(
			"coefficient %.2f is implausible for a primary driver licensed %s, under %d years before the reference date",
			value, licensedSince.Format("2006-01-02"), cfg.YoungLicenseYears)
	}
	return model.ConsistencyOK, ""
}
