package model

import "time"

// Flags annotating a successful result. They never block computation.
const (
	StalenessFresh = "FRESH"
	StalenessStale = "STALE"

	ConsistencyOK         = "OK"
	ConsistencySuspicious = "SUSPICIOUS"
)

// CoefficientState is one point of the computation trace, taken at a period
// boundary. The trace is append-only; states are never mutated in place.
type CoefficientState struct {
	Value              float64
	AsOf               time.Time
	ClaimFreeYears     int
	YearsAtFloor       int
	FranchiseAvailable bool
	RecordIndex        int
	Projected          bool
}

// EngineResult is the full outcome of one invocation: the period-by-period
// trace, the two headline coefficients, and the advisory flags. The
// coefficient at termination is nil while the last contract is still
// running; the coefficient at the reference date is always present.
type EngineResult struct {
	Trace                    []CoefficientState
	CoefficientAtTermination *float64
	CoefficientAtReference   float64
	Staleness                string
	Consistency              string
	ConsistencyDetail        string
	Messages                 []CalculationMessage
}
