package browser

import (
	"context"
	"errors"
	"net"

	"github.com/playwright-community/playwright-go"
)

// ErrSessionClosed is returned by operations on a closed session.
var ErrSessionClosed = errors.New("browser session closed")

// IsTimeout reports whether err represents an expired wait rather than a
// genuine automation failure. Timeouts on bounded waits are expected
// outcomes; everything else propagates.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
