package handlers

import (
	"net/http"
	"time"

	"dateTracker/internal/datecalc"
	"dateTracker/internal/logger"
	"dateTracker/internal/metrics"

	"go.uber.org/zap"
)

type DateHandler struct {
	now         func() time.Time
	metrics     DateRecorder
	development bool
}

// NewDateHandler uses time.Now when now is nil.
func NewDateHandler(now func() time.Time, recorder DateRecorder, development bool) *DateHandler {
	if now == nil {
		now = time.Now
	}
	return &DateHandler{now: now, metrics: recorder, development: development}
}

// CalculateDate answers GET /api/calculate-date?date=DD-MM-YYYY.
func (h *DateHandler) CalculateDate(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")

	report, err := datecalc.Calculate(raw, h.now())
	if err != nil {
		if datecalc.IsValidationError(err) {
			h.record(metrics.OutcomeInvalid)
			logger.Debug("HTTP: date rejected", zap.String("date", raw), zap.Error(err))
			respondValidation(w, FieldError{Field: "date", Message: err.Error()})
			return
		}
		handleServiceError(w, r, err, h.development)
		return
	}
	h.record(metrics.OutcomeOK)

	respondSuccess(w, http.StatusOK, toPayload("data", report))
}

func (h *DateHandler) record(outcome string) {
	if h.metrics != nil {
		h.metrics.DateCalculated(outcome)
	}
}
