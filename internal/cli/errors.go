package cli

import "errors"

// ErrUsage classifies errors caused by bad invocations or bad input
// rather than converter bugs. Callers can match it with errors.Is.
var ErrUsage = errors.New("cli usage error")

type usageError struct {
	msg string
}

func newUsageError(msg string) error {
	return usageError{msg: msg}
}

func (e usageError) Error() string {
	return e.msg
}

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}
