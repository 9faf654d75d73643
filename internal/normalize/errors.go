package normalize

import "fmt"

// MissingRequiredDateError reports a mandatory date that is absent or
// unparseable. RecordIndex is -1 when the field sits outside any record
// (the reference date). Missing dates are never defaulted.
type MissingRequiredDateError struct {
	RecordIndex int
	Field       string
}

func (e *MissingRequiredDateError) Error() string {
	if e.RecordIndex < 0 {
		return fmt.Sprintf("missing or unparseable required date %q", e.Field)
	}
	return fmt.Sprintf("record %d: missing or unparseable required date %q", e.RecordIndex, e.Field)
}

// InvalidDateOrderError reports dates that contradict each other, inside a
// record or across consecutive records.
type InvalidDateOrderError struct {
	RecordIndex int
	Detail      string
}

func (e *InvalidDateOrderError) Error() string {
	return fmt.Sprintf("record %d: %s", e.RecordIndex, e.Detail)
}

// AmbiguousResponsibilityError reports a claim whose responsibility could
// not be classified. It is never silently read as non-responsible.
type AmbiguousResponsibilityError struct {
	RecordIndex int
	ClaimIndex  int
	Raw         string
}

func (e *AmbiguousResponsibilityError) Error() string {
	return fmt.Sprintf("record %d, claim %d: ambiguous responsibility %q", e.RecordIndex, e.ClaimIndex, e.Raw)
}
