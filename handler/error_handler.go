package handler

import (
	"errors"
	"net/http"
	"time"

	"go-bank-ledger/common"
	"go-bank-ledger/metrics"
	"go-bank-ledger/model"
)

func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := next(w, r); err != nil {
			err.Send(w)
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.code = code
	s.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware records duration and status code under route, which is
// the mux pattern rather than the raw path so account numbers do not end up
// as label values.
func MetricsMiddleware(m *metrics.Metrics, route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.RecordRequest(route, rec.code, time.Since(start))
	})
}

// toAppError maps domain errors to HTTP status codes. Anything unknown is a
// 500 with fallback as the client-facing message.
func toAppError(err error, fallback string) *common.AppError {
	switch {
	case errors.Is(err, common.ErrValidation),
		errors.Is(err, model.ErrInvalidAmount),
		errors.Is(err, model.ErrInsufficientFunds),
		errors.Is(err, model.ErrSameAccountTransfer):
		return common.NewAppError(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, model.ErrAccountNotFound),
		errors.Is(err, model.ErrReceiverAccountNotFound),
		errors.Is(err, model.ErrCustomerNotFound):
		return common.NewAppError(http.StatusNotFound, err.Error(), err)
	case errors.Is(err, model.ErrDuplicateCustomer),
		errors.Is(err, model.ErrDuplicateAccount),
		errors.Is(err, model.ErrUsernameTaken):
		return common.NewAppError(http.StatusConflict, err.Error(), err)
	case errors.Is(err, model.ErrInvalidCredentials):
		return common.NewAppError(http.StatusUnauthorized, err.Error(), err)
	case errors.Is(err, model.ErrPermissionDenied):
		return common.NewAppError(http.StatusForbidden, err.Error(), err)
	default:
		return common.NewAppError(http.StatusInternalServerError, fallback, err)
	}
}
