package net

import (
	"net/http"

	perr "tunepipe/internal/platform/errors"
)

// Fail is the common failure body used by transports
// success responses carry the endpoint's own DTO, so only failures share a shape
type Fail struct {
	Status    bool           `json:"status"` // always false
	Code      perr.ErrorCode `json:"code,omitempty"`
	Error     string         `json:"error"`
	RequestID string         `json:"request_id,omitempty"`
}

// Failure builds an error status and body from any error
func Failure(err error, reqID string) (int, Fail) {
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	return status, Fail{
		Status:    false,
		Code:      w.Code,
		Error:     w.Message,
		RequestID: reqID,
	}
}

// HTTPStatus maps a project error to http status
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return perr.HTTPStatus(err)
}
