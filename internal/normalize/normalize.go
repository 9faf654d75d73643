// Package normalize turns raw extracted field maps into typed history
// records. It is the only gate between upstream extraction and the engine:
// everything past it is parsed, ordered and internally consistent, so the
// engine itself never has to guess at a missing fact.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"crm-engine/internal/model"
)

// History validates and types a full request history. Records must arrive
// oldest subscription first and must not overlap; gaps are legal (they
// drive the interruption rules) but stay explicit in the record dates.
func History(raw []model.RawRecord) (*model.InsuranceHistory, error) {
	records := make([]model.HistoryRecord, 0, len(raw))
	for i, rr := range raw {
		rec, err := Record(i, rr)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	for i := 1; i < len(records); i++ {
		if records[i].Subscription.Before(records[i-1].Subscription) {
			return nil, &InvalidDateOrderError{
				RecordIndex: i,
				Detail:      "records are not ordered oldest subscription first",
			}
		}
		prevEnd := records[i-1].LastKnown()
		if records[i].Subscription.Before(prevEnd) {
			return nil, &InvalidDateOrderError{
				RecordIndex: i,
				Detail: fmt.Sprintf("subscription %s overlaps the previous record, known until %s",
					records[i].Subscription.Format("2006-01-02"), prevEnd.Format("2006-01-02")),
			}
		}
	}
	return &model.InsuranceHistory{Records: records}, nil
}

// Record validates one raw record at position idx of the history.
func Record(idx int, raw model.RawRecord) (model.HistoryRecord, error) {
	var rec model.HistoryRecord

	sub, ok := ParseDate(raw.SubscriptionDate)
	if !ok {
		return rec, &MissingRequiredDateError{RecordIndex: idx, Field: "subscription_date"}
	}
	edition, ok := ParseDate(raw.EditionDate)
	if !ok {
		return rec, &MissingRequiredDateError{RecordIndex: idx, Field: "edition_date"}
	}

	var termination *time.Time
	if raw.TerminationDate != "" {
		t, ok := ParseDate(raw.TerminationDate)
		if !ok {
			return rec, &MissingRequiredDateError{RecordIndex: idx, Field: "termination_date"}
		}
		if !t.After(sub) {
			return rec, &InvalidDateOrderError{
				RecordIndex: idx,
				Detail:      "termination_date is not after subscription_date",
			}
		}
		termination = &t
	}

	claims := make([]model.ClaimRecord, 0, len(raw.Claims))
	for ci, rc := range raw.Claims {
		date, ok := ParseDate(rc.Date)
		if !ok {
			return rec, &MissingRequiredDateError{
				RecordIndex: idx,
				Field:       fmt.Sprintf("claims[%d].date", ci),
			}
		}
		resp, err := ParseResponsibility(idx, ci, rc.Responsibility)
		if err != nil {
			return rec, err
		}
		claims = append(claims, model.ClaimRecord{
			Date:           date,
			Responsibility: resp,
			Category:       rc.Category,
		})
	}

	drivers, err := normalizeDrivers(idx, raw.Drivers)
	if err != nil {
		return rec, err
	}

	return model.HistoryRecord{
		Issuer:            raw.Issuer,
		Subscription:      sub,
		Termination:       termination,
		Edition:           edition,
		StatedCoefficient: raw.StatedCoefficient,
		Claims:            claims,
		Drivers:           drivers,
	}, nil
}

// ParseResponsibility classifies the responsibility wording as it comes off
// a relevé d'information. Anything it does not recognize is an error for
// the caller to resolve, never a silent "non responsable".
func ParseResponsibility(recordIdx, claimIdx int, raw string) (model.Responsibility, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "full", "responsable", "responsable total", "totale", "100%":
		return model.ResponsibilityFull, nil
	case "partial", "partiel", "partielle", "partiellement responsable", "50%":
		return model.ResponsibilityPartial, nil
	case "none", "non responsable", "non-responsable", "0%":
		return model.ResponsibilityNone, nil
	default:
		return "", &AmbiguousResponsibilityError{RecordIndex: recordIdx, ClaimIndex: claimIdx, Raw: raw}
	}
}

func normalizeDrivers(idx int, raw []model.RawDriver) ([]model.DriverRecord, error) {
	drivers := make([]model.DriverRecord, 0, len(raw))
	var primaryDesignation *time.Time
	for di, rd := range raw {
		d := model.DriverRecord{Role: parseRole(rd.Role)}
		if rd.LicenseDate != "" {
			t, ok := ParseDate(rd.LicenseDate)
			if !ok {
				return nil, &MissingRequiredDateError{
					RecordIndex: idx,
					Field:       fmt.Sprintf("drivers[%d].license_date", di),
				}
			}
			d.LicenseDate = &t
		}
		if rd.DesignationDate != "" {
			t, ok := ParseDate(rd.DesignationDate)
			if !ok {
				return nil, &MissingRequiredDateError{
					RecordIndex: idx,
					Field:       fmt.Sprintf("drivers[%d].designation_date", di),
				}
			}
			d.DesignationDate = &t
		}
		if d.Role == model.DriverPrimary && d.DesignationDate != nil && primaryDesignation == nil {
			primaryDesignation = d.DesignationDate
		}
		drivers = append(drivers, d)
	}
	// a secondary driver without a designation date inherits the primary's
	for i := range drivers {
		if drivers[i].Role == model.DriverSecondary && drivers[i].DesignationDate == nil {
			drivers[i].DesignationDate = primaryDesignation
		}
	}
	return drivers, nil
}

func parseRole(raw string) model.DriverRole {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "primary", "principal", "conducteur principal", "main":
		return model.DriverPrimary
	default:
		return model.DriverSecondary
	}
}
