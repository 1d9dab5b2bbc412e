package scheduling

import (
	"errors"
	"fmt"
)

// Expected, user-correctable outcomes are returned as typed errors so the
// HTTP layer can render them inline; anything else is an infrastructure
// failure and surfaces as a generic 500.
var (
	ErrDriverNotFound = errors.New("driver not found")
	ErrRouteNotFound  = errors.New("route not found")
	ErrShiftNotFound  = errors.New("shift not found")

	ErrDriverInactive = errors.New("selected driver is not in 'active' status")
	ErrShiftNotActive = errors.New("shift is not active")

	ErrDriverConflict = errors.New("driver already occupied in the requested time window")
	ErrRouteConflict  = errors.New("route already occupied in the requested time window")
)

// DailyLimitError rejects an assignment that would push a driver's assigned
// time for one date past DailyLimitMinutes. TotalMinutes is the sum the
// assignment would have produced, so callers can report by how much the
// limit was exceeded.
type DailyLimitError struct {
	TotalMinutes int
}

func (e *DailyLimitError) Error() string {
	return fmt.Sprintf("daily limit exceeded: %.1fh assigned for the day, cap is %.1fh",
		float64(e.TotalMinutes)/60, float64(DailyLimitMinutes)/60)
}
