// Package upstream carries the error shape shared by outbound capability
// clients: a failure identified by the HTTP status the upstream returned.
package upstream

import (
	"errors"
	"fmt"
)

// Error is a non-2xx reply from an external capability. The status is
// forwarded to the API caller rather than swallowed.
type Error struct {
	Status int
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream replied with status %d", e.Status)
}

// StatusOf extracts the upstream status from err, if it carries one.
func StatusOf(err error) (int, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Status, true
	}
	return 0, false
}
