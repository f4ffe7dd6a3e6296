package bridge

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// isTimeoutErr - true if err is a net.Error reporting Timeout(), the
// standard Go idiom for "a deadline or client-level timeout fired" as
// opposed to a hard connection failure.
func isTimeoutErr(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// parsePort - parse a local listener port, rejecting anything outside the
// uint16 range.
func parsePort(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q: %w", s, err)
	}
	return uint16(v), nil
}
