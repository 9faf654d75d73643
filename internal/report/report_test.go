package report

import (
	"testing"
	"time"

	"crm-engine/internal/model"
)

func TestBuildAssignsMessageIDsInOrder(t *testing.T) {
	res := &model.EngineResult{
		CoefficientAtReference: 1.00,
		Staleness:              model.StalenessStale,
		Consistency:            model.ConsistencySuspicious,
		ConsistencyDetail:      "coefficient implausible for licensure age",
		Messages: []model.CalculationMessage{
			{Level: model.LevelWarning, Code: model.CodeStatedMismatch, Message: "mismatch"},
		},
	}
	ref := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	resp := Build(ref, res, time.Now())

	msgs := resp.CalculationResult.Messages
	if len(msgs) != 3 {
		t.Fatalf("messages: got %d, want 3", len(msgs))
	}
	for i, m := range msgs {
		if m.ID != i {
			t.Fatalf("message %d has id %d", i, m.ID)
		}
	}
	if msgs[1].Code != model.CodeStaleDocument || msgs[2].Code != model.CodeSuspiciousValue {
		t.Fatalf("message order: %+v", msgs)
	}
	if msgs[2].Message != res.ConsistencyDetail {
		t.Fatal("suspicious message must carry the consistency detail")
	}
}

func TestBuildEmptyMessagesStayEmptyList(t *testing.T) {
	res := &model.EngineResult{
		CoefficientAtReference: 0.95,
		Staleness:              model.StalenessFresh,
		Consistency:            model.ConsistencyOK,
	}
	resp := Build(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), res, time.Now())

	if resp.CalculationResult.Messages == nil {
		t.Fatal("messages must encode as an empty list, not null")
	}
	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		t.Fatalf("outcome: %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.CalculationMetadata.ReferenceDate != "2024-06-01" {
		t.Fatalf("reference date: %s", resp.CalculationMetadata.ReferenceDate)
	}
}

func TestBuildRendersTrace(t *testing.T) {
	asOf := time.Date(2020, 11, 1, 0, 0, 0, 0, time.UTC)
	res := &model.EngineResult{
		CoefficientAtReference: 0.95,
		Staleness:              model.StalenessFresh,
		Consistency:            model.ConsistencyOK,
		Trace: []model.CoefficientState{
			{Value: 0.95, AsOf: asOf, ClaimFreeYears: 1},
			{Value: 0.90, AsOf: asOf.AddDate(1, 0, 0), ClaimFreeYears: 2, Projected: true},
		},
	}
	resp := Build(asOf.AddDate(2, 0, 0), res, time.Now())

	trace := resp.CalculationResult.Trace
	if len(trace) != 2 {
		t.Fatalf("trace: got %d states", len(trace))
	}
	if trace[0].AsOf != "2020-11-01" || trace[0].Value != 0.95 || trace[0].Projected {
		t.Fatalf("first state: %+v", trace[0])
	}
	if trace[1].AsOf != "2021-11-01" || !trace[1].Projected {
		t.Fatalf("second state: %+v", trace[1])
	}
}
