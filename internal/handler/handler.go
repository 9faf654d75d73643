package handler

import (
	"errors"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"crm-engine/internal/audit"
	"crm-engine/internal/config"
	"crm-engine/internal/engine"
	"crm-engine/internal/model"
	"crm-engine/internal/normalize"
)

type Handler struct {
	cfg   *config.Engine
	store *audit.Store // nil disables the calculation log
	log   *zap.SugaredLogger
}

func New(cfg *config.Engine, store *audit.Store, log *zap.SugaredLogger) *Handler {
	return &Handler{cfg: cfg, store: store, log: log}
}

// Handle serves POST /calculate.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	if string(ctx.Path()) != "/calculate" {
		writeError(ctx, fasthttp.StatusNotFound, model.ErrorResponse{Message: "Not found"})
		return
	}
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, model.ErrorResponse{Message: "Method not allowed"})
		return
	}

	var req model.CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, model.ErrorResponse{Message: "Invalid request body: " + err.Error()})
		return
	}
	if len(req.History) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, model.ErrorResponse{Message: "At least one history record is required"})
		return
	}

	resp, err := engine.Process(&req, h.cfg)
	if err != nil {
		h.writeComputeError(ctx, err)
		return
	}

	body, err := json.Marshal(resp)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, model.ErrorResponse{Message: "Encoding failed"})
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(body)

	if h.store != nil {
		if err := h.store.Record(resp, body); err != nil {
			h.log.Warnw("audit record failed", "calculation_id", resp.CalculationMetadata.CalculationID, "error", err)
		}
	}
	h.log.Infow("calculation served",
		"calculation_id", resp.CalculationMetadata.CalculationID,
		"coefficient_at_reference", resp.CalculationResult.CoefficientAtReference,
		"staleness", resp.CalculationResult.Staleness,
		"consistency", resp.CalculationResult.Consistency,
	)
}

// writeComputeError maps the normalizer's typed errors onto 422 responses
// carrying enough context for the caller to ask a human for the missing
// fact. Anything else is a plain 500.
func (h *Handler) writeComputeError(ctx *fasthttp.RequestCtx, err error) {
	var missing *normalize.MissingRequiredDateError
	var order *normalize.InvalidDateOrderError
	var ambiguous *normalize.AmbiguousResponsibilityError

	switch {
	case errors.As(err, &missing):
		writeError(ctx, fasthttp.StatusUnprocessableEntity, model.ErrorResponse{
			Code:        "MISSING_REQUIRED_DATE",
			RecordIndex: recordIndex(missing.RecordIndex),
			Field:       missing.Field,
			Message:     err.Error(),
		})
	case errors.As(err, &order):
		writeError(ctx, fasthttp.StatusUnprocessableEntity, model.ErrorResponse{
			Code:        "INVALID_DATE_ORDER",
			RecordIndex: recordIndex(order.RecordIndex),
			Message:     err.Error(),
		})
	case errors.As(err, &ambiguous):
		writeError(ctx, fasthttp.StatusUnprocessableEntity, model.ErrorResponse{
			Code:        "AMBIGUOUS_RESPONSIBILITY",
			RecordIndex: recordIndex(ambiguous.RecordIndex),
			Message:     err.Error(),
		})
	default:
		h.log.Errorw("calculation failed", "error", err)
		writeError(ctx, fasthttp.StatusInternalServerError, model.ErrorResponse{Message: "Calculation failed"})
	}
}

func recordIndex(i int) *int {
	if i < 0 {
		return nil
	}
	return &i
}

func writeError(ctx *fasthttp.RequestCtx, status int, resp model.ErrorResponse) {
	resp.Status = status
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	body, _ := json.Marshal(resp)
	ctx.SetBody(body)
}
