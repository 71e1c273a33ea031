package params

import (
	"fmt"
)

// Error reports one invalid option. Param names the offending top-level
// option; Detail is either a human-readable cause string or a nested *Error
// pointing at a sub-option (pagination→count, format→csv_param). It is the
// only error kind this package originates.
type Error struct {
	Param  string
	Detail any
}

func invalidParam(param string, detail any) *Error {
	return &Error{Param: param, Detail: detail}
}

// NewError builds an Error outside the pipeline. Endpoint-level id checks
// share the same taxonomy as the validator chain.
func NewError(param string, detail any) *Error {
	return invalidParam(param, detail)
}

func (e *Error) Error() string {
	switch d := e.Detail.(type) {
	case *Error:
		return fmt.Sprintf("invalid parameter %s: %s", e.Param, d.inner())
	default:
		return fmt.Sprintf("invalid parameter %s: %v", e.Param, d)
	}
}

func (e *Error) inner() string {
	switch d := e.Detail.(type) {
	case *Error:
		return fmt.Sprintf("%s: %s", e.Param, d.inner())
	default:
		return fmt.Sprintf("%s: %v", e.Param, d)
	}
}

// Unwrap exposes a nested sub-option error for errors.As matching.
func (e *Error) Unwrap() error {
	if nested, ok := e.Detail.(*Error); ok {
		return nested
	}
	return nil
}
