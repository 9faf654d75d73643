package model

type CalculationResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   CalculationResult   `json:"calculation_result"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	ReferenceDate          string `json:"reference_date"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type CalculationResult struct {
	Messages                 []CalculationMessage `json:"messages"`
	CoefficientAtTermination *float64             `json:"coefficient_at_termination"`
	CoefficientAtReference   float64              `json:"coefficient_at_reference"`
	Staleness                string               `json:"staleness"`
	Consistency              string               `json:"consistency"`
	ConsistencyDetail        string               `json:"consistency_detail,omitempty"`
	Trace                    []TraceState         `json:"trace"`
}

// TraceState is the wire form of one CoefficientState.
type TraceState struct {
	AsOf               string  `json:"as_of"`
	Value              float64 `json:"value"`
	ClaimFreeYears     int     `json:"claim_free_years"`
	YearsAtFloor       int     `json:"years_at_floor"`
	FranchiseAvailable bool    `json:"franchise_available"`
	RecordIndex        int     `json:"record_index"`
	Projected          bool    `json:"projected"`
}

type ErrorResponse struct {
	Status      int    `json:"status"`
	Code        string `json:"code,omitempty"`
	RecordIndex *int   `json:"record_index,omitempty"`
	Field       string `json:"field,omitempty"`
	Message     string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
