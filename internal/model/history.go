package model

import "time"

// Responsibility is the insured's share of fault in a claim.
type Responsibility string

const (
	ResponsibilityFull    Responsibility = "FULL"
	ResponsibilityPartial Responsibility = "PARTIAL"
	ResponsibilityNone    Responsibility = "NONE"
)

type DriverRole string

const (
	DriverPrimary   DriverRole = "PRIMARY"
	DriverSecondary DriverRole = "SECONDARY"
)

// ClaimRecord is one claim as stated on a relevé d'information.
type ClaimRecord struct {
	Date           time.Time
	Responsibility Responsibility
	Category       string
}

type DriverRecord struct {
	Role            DriverRole
	LicenseDate     *time.Time
	DesignationDate *time.Time
}

// HistoryRecord describes one continuous insurance relationship for one
// vehicle, as summarized by the issuing insurer.
type HistoryRecord struct {
	Issuer            string
	Subscription      time.Time
	Termination       *time.Time
	Edition           time.Time
	StatedCoefficient *float64
	Claims            []ClaimRecord
	Drivers           []DriverRecord
}

// LastKnown is the last date the record vouches for: the termination date
// when the contract ended, the edition date otherwise.
func (r *HistoryRecord) LastKnown() time.Time {
	if r.Termination != nil {
		return *r.Termination
	}
	return r.Edition
}

// InsuranceHistory is an ordered sequence of records, oldest subscription
// first. Gaps between records are legal; overlaps are not.
type InsuranceHistory struct {
	Records []HistoryRecord
}

// Latest returns the most recent record, or nil for an empty history.
func (h *InsuranceHistory) Latest() *HistoryRecord {
	if len(h.Records) == 0 {
		return nil
	}
	return &h.Records[len(h.Records)-1]
}

// PrimaryDriver returns the primary driver of the most recent record.
func (h *InsuranceHistory) PrimaryDriver() *DriverRecord {
	latest := h.Latest()
	if latest == nil {
		return nil
	}
	for i := range latest.Drivers {
		if latest.Drivers[i].Role == DriverPrimary {
			return &latest.Drivers[i]
		}
	}
	return nil
}
