package notifier

import "errors"

var (
	// ErrBadEvent marks an event body that can never be processed;
	// such messages are dropped, not requeued.
	ErrBadEvent = errors.New("malformed application event")
)

// RetryableError wraps transient failures so the worker loop requeues the
// message.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
