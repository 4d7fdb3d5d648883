// Package apierrors provides error values that carry the http status an
// endpoint should answer with, so that business logic can decide the outcome
// without importing any http handler code.
package apierrors

import (
	"errors"
	"net/http"
)

type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

// APIStatus is implemented by errors that map to an api response status.
type APIStatus interface {
	Status() Status
}

type StatusError struct {
	ErrStatus Status
}

var _ error = (*StatusError)(nil)
var _ APIStatus = (*StatusError)(nil)

func (e *StatusError) Error() string {
	if e.ErrStatus.Details != "" {
		return e.ErrStatus.Details
	}

	return e.ErrStatus.Message
}

func (e *StatusError) Status() Status {
	return e.ErrStatus
}

func newStatusError(code int, message, details string) *StatusError {
	return &StatusError{
		ErrStatus: Status{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

func NewBadRequest(details string) *StatusError {
	return newStatusError(http.StatusBadRequest, "the request could not be parsed or is invalid", details)
}

func NewUnauthorized(details string) *StatusError {
	return newStatusError(http.StatusUnauthorized, "missing or invalid authorization", details)
}

func NewForbidden(details string) *StatusError {
	return newStatusError(http.StatusForbidden, "no permission to perform this operation", details)
}

func NewNotFound(details string) *StatusError {
	return newStatusError(http.StatusNotFound, "the requested resource could not be found", details)
}

func NewConflict(details string) *StatusError {
	return newStatusError(http.StatusConflict, "the request conflicts with the current resource state", details)
}

func NewBadGateway(details string) *StatusError {
	return newStatusError(http.StatusBadGateway, "an upstream service failed to answer", details)
}

func NewInternalServerError(details string) *StatusError {
	return newStatusError(http.StatusInternalServerError, "an unexpected error occurred", details)
}

// AsAPIStatus returns the status carried by err, or nil if err carries none.
func AsAPIStatus(err error) APIStatus {
	var status APIStatus
	if errors.As(err, &status) {
		return status
	}

	return nil
}

func codeForError(err error) int {
	if status := AsAPIStatus(err); status != nil {
		return status.Status().Code
	}

	return 0
}

func IsBadRequestError(err error) bool {
	return codeForError(err) == http.StatusBadRequest
}

func IsUnauthorizedError(err error) bool {
	return codeForError(err) == http.StatusUnauthorized
}

func IsForbiddenError(err error) bool {
	return codeForError(err) == http.StatusForbidden
}

func IsNotFoundError(err error) bool {
	return codeForError(err) == http.StatusNotFound
}

func IsConflictError(err error) bool {
	return codeForError(err) == http.StatusConflict
}

func IsBadGatewayError(err error) bool {
	return codeForError(err) == http.StatusBadGateway
}

func IsInternalServerError(err error) bool {
	return codeForError(err) == http.StatusInternalServerError
}
