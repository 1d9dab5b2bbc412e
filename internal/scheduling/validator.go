package scheduling

import (
	"fmt"

	"fleet_console/internal/models"
)

// Validator decides whether a proposed shift assignment is admissible given
// the driver's and route's existing active shifts for that date. It only
// reads shift state; the Scheduler commits writes.
type Validator struct {
	Catalog Catalog
	Shifts  ShiftStore
}

// ValidateAssignment checks the candidate (driverID, routeID, date, startTime)
// against the schedule. The candidate's duration comes from the resolved
// route. excludeShiftID names a shift to ignore in all checks (0 for none),
// used when re-validating an edit of that same shift.
//
// Windows are half-open [start, start+duration) in minutes since midnight;
// a window may extend past 24:00 but is never wrapped onto the next date.
// On success the returned total is the driver's assigned minutes for the
// date, candidate included.
func (v Validator) ValidateAssignment(driverID, routeID uint, date, startTime string, excludeShiftID uint) (int, error) {
	route, err := v.Catalog.RouteByID(routeID)
	if err != nil {
		return 0, err
	}

	start, err := ParseClock(startTime)
	if err != nil {
		return 0, err
	}
	end := start + route.DurationMinutes

	driverShifts, err := v.Shifts.ActiveByDriverDate(driverID, date)
	if err != nil {
		return 0, err
	}
	driverShifts = withoutShift(driverShifts, excludeShiftID)

	for _, s := range driverShifts {
		conflict, err := windowCollides(start, end, s)
		if err != nil {
			return 0, err
		}
		if conflict {
			return 0, ErrDriverConflict
		}
	}

	routeShifts, err := v.Shifts.ActiveByRouteDate(routeID, date)
	if err != nil {
		return 0, err
	}
	for _, s := range withoutShift(routeShifts, excludeShiftID) {
		conflict, err := windowCollides(start, end, s)
		if err != nil {
			return 0, err
		}
		if conflict {
			return 0, ErrRouteConflict
		}
	}

	total := route.DurationMinutes
	for _, s := range driverShifts {
		total += s.DurationMinutes
	}
	if total > DailyLimitMinutes {
		return 0, &DailyLimitError{TotalMinutes: total}
	}

	return total, nil
}

// windowCollides reports whether the candidate window [start,end) intersects
// the stored shift's window.
func windowCollides(start, end int, s models.Shift) (bool, error) {
	ss, err := ParseClock(s.StartTime)
	if err != nil {
		// Stored times are validated on write; a bad one means corrupt data.
		return false, fmt.Errorf("shift %d has malformed start time: %w", s.ID, err)
	}
	return overlaps(start, end, ss, ss+s.DurationMinutes), nil
}

func withoutShift(shifts []models.Shift, id uint) []models.Shift {
	if id == 0 {
		return shifts
	}
	out := shifts[:0:0]
	for _, s := range shifts {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}
