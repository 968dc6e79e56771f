package errors

import (
	stderrors "errors"

	"github.com/muhammadheryan/pos-terminal/constant"
	"go.uber.org/multierr"
)

type CustomError struct {
	errType constant.ErrorType
	message string
}

func (c CustomError) Error() string {
	if c.message != "" {
		return c.message
	}
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func (c CustomError) Type() constant.ErrorType {
	return c.errType
}

// Is matches on error type only, so a verbatim backend message still compares equal
// to SetCustomError of the same type.
func (c CustomError) Is(target error) bool {
	t, ok := target.(CustomError)
	return ok && t.errType == c.errType
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// SetCustomErrorMessage keeps the error type but overrides the user-facing message.
func SetCustomErrorMessage(errorType constant.ErrorType, message string) CustomError {
	return CustomError{
		errType: errorType,
		message: message,
	}
}

// IsType reports whether err, or any error combined into it, has the given type.
func IsType(err error, errorType constant.ErrorType) bool {
	for _, e := range multierr.Errors(err) {
		var ce CustomError
		if stderrors.As(e, &ce) && ce.errType == errorType {
			return true
		}
	}
	return false
}

// Flatten splits a combined error into its CustomError parts. Anything that is not a
// CustomError is reported as ErrInternal.
func Flatten(err error) []CustomError {
	errs := multierr.Errors(err)
	out := make([]CustomError, 0, len(errs))
	for _, e := range errs {
		var ce CustomError
		if stderrors.As(e, &ce) {
			out = append(out, ce)
			continue
		}
		out = append(out, SetCustomError(constant.ErrInternal))
	}
	return out
}
