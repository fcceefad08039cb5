package breaker

import (
	"time"

	"farmweather.app/errors"
)

// WithTimeout races the operation against a deadline. If the timer fires
// first a Timeout error carrying message is returned; otherwise the
// operation's own outcome is passed through. The timer is cancelled once the
// race settles, and the result channel is buffered so the losing goroutine
// never blocks.
func WithTimeout(op Operation, timeout time.Duration, message string) (interface{}, error) {
	type outcome struct {
		result interface{}
		err    error
	}

	done := make(chan outcome, 1)
	go func() {
		result, err := op()
		done <- outcome{result: result, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case o := <-done:
		return o.result, o.err
	case <-timer.C:
		return nil, errors.NewTimeoutError(message)
	}
}
