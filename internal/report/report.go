// Package report assembles the immutable response envelope out of a
// finished engine result. It emits structure, never formatting.
package report

import (
	"time"

	"github.com/google/uuid"

	"crm-engine/internal/model"
)

// Build renders the engine result into the wire envelope. Message ids are
// assigned here, in emission order, so every message is addressable from
// the response alone.
func Build(referenceDate time.Time, res *model.EngineResult, startedAt time.Time) *model.CalculationResponse {
	var messages []model.CalculationMessage
	for _, m := range res.Messages {
		m.ID = len(messages)
		messages = append(messages, m)
	}
	if res.Staleness == model.StalenessStale {
		messages = append(messages, model.CalculationMessage{
			ID:      len(messages),
			Level:   model.LevelWarning,
			Code:    model.CodeStaleDocument,
			Message: "the most recent relevé d'information predates the reference date by more than the freshness window",
		})
	}
	if res.Consistency == model.ConsistencySuspicious {
		messages = append(messages, model.CalculationMessage{
			ID:      len(messages),
			Level:   model.LevelWarning,
			Code:    model.CodeSuspiciousValue,
			Message: res.ConsistencyDetail,
		})
	}
	if messages == nil {
		messages = []model.CalculationMessage{}
	}

	trace := make([]model.TraceState, len(res.Trace))
	for i, st := range res.Trace {
		trace[i] = model.TraceState{
			AsOf:               st.AsOf.Format("2006-01-02"),
			Value:              st.Value,
			ClaimFreeYears:     st.ClaimFreeYears,
			YearsAtFloor:       st.YearsAtFloor,
			FranchiseAvailable: st.FranchiseAvailable,
			RecordIndex:        st.RecordIndex,
			Projected:          st.Projected,
		}
	}

	completedAt := time.Now().UTC()
	elapsed := completedAt.Sub(startedAt.UTC())
	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			ReferenceDate:          referenceDate.Format("2006-01-02"),
			CalculationStartedAt:   startedAt.UTC().Format(time.RFC3339),
			CalculationCompletedAt: completedAt.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     model.OutcomeSuccess,
		},
		CalculationResult: model.CalculationResult{
			Messages:                 messages,
			CoefficientAtTermination: res.CoefficientAtTermination,
			CoefficientAtReference:   res.CoefficientAtReference,
			Staleness:                res.Staleness,
			Consistency:              res.Consistency,
			ConsistencyDetail:        res.ConsistencyDetail,
			Trace:                    trace,
		},
	}
}
