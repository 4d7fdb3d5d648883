package downstreams

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	// ErrorKindNetwork - the request never produced a usable response
	ErrorKindNetwork ErrorKind = "network"
	// ErrorKindAuth - the downstream rejected our credentials
	ErrorKindAuth ErrorKind = "auth"
	// ErrorKindMalformedResponse - got a response, could not make sense of the body
	ErrorKindMalformedResponse ErrorKind = "malformed-response"
	// ErrorKindRejected - the downstream understood us and said no
	ErrorKindRejected ErrorKind = "rejected"
)

// Error is the typed failure of a downstream call. Callers that need to
// distinguish outcomes (retry safety, user messaging) switch on Kind.
type Error struct {
	Kind       ErrorKind
	HTTPStatus int
	Detail     string
}

func (e *Error) Error() string {
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("downstream failure (%s, status %d): %s", e.Kind, e.HTTPStatus, e.Detail)
	}
	return fmt.Sprintf("downstream failure (%s): %s", e.Kind, e.Detail)
}

// AsDownstreamError unwraps err into a downstream Error if it is one.
func AsDownstreamError(err error) (*Error, bool) {
	var dsErr *Error
	if errors.As(err, &dsErr) {
		return dsErr, true
	}
	return nil, false
}

func IsErrorOfKind(err error, kind ErrorKind) bool {
	if dsErr, ok := AsDownstreamError(err); ok {
		return dsErr.Kind == kind
	}
	return false
}

// ErrByStatus folds the transport error and the response status into the
// error taxonomy. A nil return means the call succeeded with a 2xx.
func ErrByStatus(err error, status int) error {
	if err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			return &Error{Kind: ErrorKindMalformedResponse, HTTPStatus: status, Detail: err.Error()}
		}
		return &Error{Kind: ErrorKindNetwork, Detail: err.Error()}
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &Error{Kind: ErrorKindAuth, HTTPStatus: status, Detail: "downstream rejected our credentials"}
	case status >= 300:
		return &Error{Kind: ErrorKindRejected, HTTPStatus: status, Detail: "downstream request was not accepted - see log for details"}
	}

	return nil
}
