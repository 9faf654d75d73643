package engine

import (
	"fmt"
	"math"
	"time"

	"crm-engine/internal/config"
	"crm-engine/internal/model"
	"crm-engine/internal/period"
)

// Run walks the history's assessment periods in order and evolves the
// coefficient. The input must already be normalized; Run itself cannot
// fail and always returns the full trace alongside the headline values.
func Run(hist *model.InsuranceHistory, referenceDate time.Time, cfg *config.Engine) *model.EngineResult {
	res := &model.EngineResult{}

	first := &hist.Records[0]
	st := model.CoefficientState{Value: cfg.Base, AsOf: first.Subscription}
	if first.StatedCoefficient != nil {
		// a caller-supplied starting point, never an inferred one
		st.Value = roundDown(*first.StatedCoefficient, cfg.RoundingDecimals)
	}

	for idx := range hist.Records {
		rec := &hist.Records[idx]
		if idx > 0 {
			st = carryAcrossGap(st, &hist.Records[idx-1], rec, cfg)
			if rec.StatedCoefficient != nil && math.Abs(*rec.StatedCoefficient-st.Value) > 0.005 {
				res.Messages = append(res.Messages, model.CalculationMessage{
					Level: model.LevelWarning,
					Code:  model.CodeStatedMismatch,
					Message: fmt.Sprintf("record %d states coefficient %.2f where the computed history carries %.2f",
						idx, *rec.StatedCoefficient, st.Value),
				})
			}
		}
		periods := period.Segment(rec, idx, referenceDate)
		period.Assign(periods, rec.Claims, cfg.DeferralMonths)
		for i := range periods {
			st = applyPeriod(st, &periods[i], cfg)
			res.Trace = append(res.Trace, st)
		}
	}

	last := hist.Latest()
	if last.Termination != nil && !last.Termination.After(referenceDate) {
		atTermination := st.Value
		res.CoefficientAtTermination = &atTermination
		projected := projectToReference(st, referenceDate, cfg)
		if len(projected) > 0 {
			res.Trace = append(res.Trace, projected...)
			st = projected[len(projected)-1]
		}
	}
	res.CoefficientAtReference = st.Value
	return res
}

// applyPeriod runs one period through the four per-period steps: claims
// pass, annual adjustment, clamp with floor seasoning, rapid descent.
func applyPeriod(st model.CoefficientState, p *period.AssessmentPeriod, cfg *config.Engine) model.CoefficientState {
	claimFree := true
	for _, c := range p.Claims {
		switch c.Responsibility {
		case model.ResponsibilityFull:
			claimFree = false
			if st.FranchiseAvailable {
				// the seasoned floor absorbs one responsible claim;
				// seasoning restarts from zero afterwards
				st.FranchiseAvailable = false
				st.YearsAtFloor = 0
				continue
			}
			st.Value = roundDown(st.Value*cfg.FullClaimFactor, cfg.RoundingDecimals)
		case model.ResponsibilityPartial:
			claimFree = false
			st.Value = roundDown(st.Value*cfg.PartialClaimFactor, cfg.RoundingDecimals)
		}
	}

	// A period counts as an insured year when it ran to its anniversary
	// boundary, or ended via a termination after at least the minimum
	// reduction-eligible length. A period merely cut off by the reference
	// date is still in progress and earns nothing yet.
	countsAsYear := p.Complete || (p.FinalPartial && p.DurationMonths >= cfg.ReductionMinMonths)

	if claimFree {
		if countsAsYear {
			st.Value = roundDown(st.Value*cfg.AnnualReductionFactor, cfg.RoundingDecimals)
			st.ClaimFreeYears++
		}
	} else {
		st.ClaimFreeYears = 0
	}

	st = settle(st, cfg, countsAsYear)
	st.AsOf = p.End
	st.RecordIndex = p.RecordIndex
	st.Projected = false
	return st
}

// settle clamps the value, counts years held at the floor toward the bonus
// franchise, and applies the descente rapide.
func settle(st model.CoefficientState, cfg *config.Engine, countsAsYear bool) model.CoefficientState {
	if st.Value < cfg.Floor {
		st.Value = cfg.Floor
	}
	if st.Value > cfg.Ceiling {
		st.Value = cfg.Ceiling
	}

	if st.Value == cfg.Floor {
		if countsAsYear {
			st.YearsAtFloor++
			if st.YearsAtFloor >= cfg.FranchiseFloorYears {
				st.FranchiseAvailable = true
			}
		}
	} else {
		st.YearsAtFloor = 0
	}

	if st.Value > cfg.Base && st.ClaimFreeYears >= cfg.RapidDescentYears {
		st.Value = cfg.Base
		st.ClaimFreeYears = 0
	}
	return st
}

// carryAcrossGap seeds the next record's first period. A bonus does not
// survive an interruption of InterruptionResetYears or more; the counters
// earned with it fall with it. A malus is carried regardless.
func carryAcrossGap(st model.CoefficientState, prev, next *model.HistoryRecord, cfg *config.Engine) model.CoefficientState {
	resetBoundary := prev.LastKnown().AddDate(cfg.InterruptionResetYears, 0, 0)
	if !next.Subscription.Before(resetBoundary) && st.Value < cfg.Base {
		st.Value = cfg.Base
		st.ClaimFreeYears = 0
		st.YearsAtFloor = 0
		st.FranchiseAvailable = false
	}
	return st
}

// projectToReference continues the annual adjustment, claim-free assumed,
// for every complete year between the last known state and the reference
// date. The returned states are marked as projected.
func projectToReference(st model.CoefficientState, referenceDate time.Time, cfg *config.Engine) []model.CoefficientState {
	var projected []model.CoefficientState
	for {
		next := st.AsOf.AddDate(1, 0, 0)
		if next.After(referenceDate) {
			return projected
		}
		st.Value = roundDown(st.Value*cfg.AnnualReductionFactor, cfg.RoundingDecimals)
		st.ClaimFreeYears++
		st = settle(st, cfg, true)
		st.AsOf = next
		st.Projected = true
		projected = append(projected, st)
	}
}

// roundDown truncates toward zero at the configured precision after every
// multiplication ("arrondi par défaut"). The nudge compensates for binary
// representation: 1.00*0.95 is 0.9499999… in float64 and must still land
// on 0.95, and no rule factor has enough decimals for 1e-9 to cross a real
// boundary.
func roundDown(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Floor(v*scale+1e-9) / scale
}
