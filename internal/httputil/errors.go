package httputil

import "errors"

// Errors that are returned to API clients when a request cannot be
// decoded. They deliberately do not echo the offending input back.
var (
	ErrInvalidBody      = errors.New("the request body could not be parsed, please check it for syntax errors")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidUUID      = errors.New("the specified resource ID is not a valid UUID")
)
