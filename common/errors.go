package common

import (
	"encoding/json"
	"net/http"

	"go-bank-ledger/logger"

	"github.com/sirupsen/logrus"
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Send logs the internal error, if any, and writes the error as JSON.
func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		entry := logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Code,
			"internal_error": e.Err.Error(),
		})
		if e.Code >= http.StatusInternalServerError {
			entry.Error(e.Message)
		} else {
			entry.Info(e.Message)
		}
	}

	WriteJSON(w, e.Code, e)
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
