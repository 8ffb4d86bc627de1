package core

import (
	"net/http"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// FailureKind tells why a request failed. Callers only ever need the message;
// the kind is there for logs and for code that wants to branch on it.
type FailureKind int

const (
	KindNetwork  FailureKind = iota // request never got a response
	KindParse                       // response body could not be decoded
	KindRejected                    // server answered with a non-2xx status
)

func (k FailureKind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindRejected:
		return "rejected"
	default:
		return "network"
	}
}

// RequestError is the one failure a store action ever returns.
// Error() is the original message, untouched.
type RequestError struct {
	Kind    FailureKind
	Status  int // HTTP status, only set for KindRejected
	Message string
	Err     error
}

func NewRequestError(kind FailureKind, msg string, err error) *RequestError {
	return &RequestError{Kind: kind, Message: msg, Err: err}
}

// NewRejectedError builds a KindRejected error. An empty msg falls back to the status text.
func NewRejectedError(status int, msg string) *RequestError {
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &RequestError{Kind: KindRejected, Status: status, Message: msg}
}

func (err *RequestError) Error() string { return err.Message }

func (err *RequestError) Unwrap() error { return err.Err }

// AsRequestError returns the *RequestError in err's chain.
// Any other error is normalized to a KindNetwork failure carrying the same message.
func AsRequestError(err error) *RequestError {
	if err == nil {
		return nil
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr
	}
	return NewRequestError(KindNetwork, err.Error(), err)
}

// IsNotFound reports whether err is a server rejection with a 404 status.
func IsNotFound(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Kind == KindRejected && reqErr.Status == http.StatusNotFound
}

// ErrNotFound is returned by repositories when no record matches.
var ErrNotFound = errors.New("not found")
