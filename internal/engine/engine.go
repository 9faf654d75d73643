// Package engine computes the bonus-malus coefficient (CRM) of a motor
// insurance history. One invocation is a pure function over the supplied
// history and reference date; nothing is kept between calls.
package engine

import (
	"errors"
	"time"

	"crm-engine/internal/config"
	"crm-engine/internal/model"
	"crm-engine/internal/normalize"
	"crm-engine/internal/report"
	"crm-engine/internal/validate"
)

// ErrEmptyHistory rejects an invocation with nothing to compute on.
var ErrEmptyHistory = errors.New("insurance history contains no records")

// Process runs the full pipeline on one request: normalize, segment,
// assign, walk, cross-check, report. Structural errors abort with a typed
// error; advisory findings ride on the successful response.
func Process(req *model.CalculationRequest, cfg *config.Engine) (*model.CalculationResponse, error) {
	started := time.Now()

	if len(req.History) == 0 {
		return nil, ErrEmptyHistory
	}
	referenceDate, ok := normalize.ParseDate(req.ReferenceDate)
	if !ok {
		return nil, &normalize.MissingRequiredDateError{RecordIndex: -1, Field: "reference_date"}
	}
	hist, err := normalize.History(req.History)
	if err != nil {
		return nil, err
	}

	res := Run(hist, referenceDate, cfg)
	res.Staleness, _ = validate.Staleness(hist, referenceDate, cfg)
	res.Consistency, res.ConsistencyDetail = validate.Consistency(hist, res.CoefficientAtReference, referenceDate, cfg)

	return report.Build(referenceDate, res, started), nil
}
