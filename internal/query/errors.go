package query

import (
	"errors"
	"fmt"

	"github.com/roach88/applink/internal/store"
)

// ErrUnrecognizedRequest reports a path that matches no known shape.
// It signals an integration bug upstream and is never folded into "not found".
var ErrUnrecognizedRequest = errors.New("unrecognized request")

// ErrorCode categorizes query errors.
type ErrorCode string

const (
	// CodeUnrecognizedRequest indicates the path matched no route.
	CodeUnrecognizedRequest ErrorCode = "UNRECOGNIZED_REQUEST"

	// CodeStorageUnavailable indicates the dataset could not be opened.
	CodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"

	// CodeQueryFailed indicates the dataset was open but the read failed.
	CodeQueryFailed ErrorCode = "QUERY_FAILED"
)

// Error is a query failure with the request path that caused it.
type Error struct {
	Code ErrorCode
	Path string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %q: %v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %q", e.Code, e.Path)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func unrecognized(path string) *Error {
	return &Error{Code: CodeUnrecognizedRequest, Path: path, Err: ErrUnrecognizedRequest}
}

// IsUnrecognized reports whether err is an unrecognized-request error.
func IsUnrecognized(err error) bool {
	return errors.Is(err, ErrUnrecognizedRequest)
}

// IsStorageUnavailable reports whether err means the dataset could not be opened.
func IsStorageUnavailable(err error) bool {
	return errors.Is(err, store.ErrStorageUnavailable)
}

// codeFor classifies a read failure.
func codeFor(err error) ErrorCode {
	if IsStorageUnavailable(err) {
		return CodeStorageUnavailable
	}
	return CodeQueryFailed
}
