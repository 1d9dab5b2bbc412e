package scheduling

import (
	"fleet_console/internal/models"
)

// Scheduler wraps the validator with the writes the console performs. It owns
// the per-(driver,date)/(route,date) locks that make each validate-then-write
// sequence atomic with respect to other writers touching the same driver or
// route on the same date.
type Scheduler struct {
	catalog Catalog
	shifts  ShiftStore
	locks   *dateLocks
}

func NewScheduler(catalog Catalog, shifts ShiftStore) *Scheduler {
	return &Scheduler{
		catalog: catalog,
		shifts:  shifts,
		locks:   newDateLocks(),
	}
}

// Validator returns the read-only validator over the scheduler's stores.
func (sc *Scheduler) Validator() Validator {
	return Validator{Catalog: sc.catalog, Shifts: sc.shifts}
}

// AssignShift creates a new active shift after admission and validation
// checks. Driver display name/license and route name are snapshotted onto
// the record; later catalog renames do not rewrite history.
func (sc *Scheduler) AssignShift(driverID, routeID uint, date, startTime string) (models.Shift, error) {
	driver, err := sc.catalog.DriverByID(driverID)
	if err != nil {
		return models.Shift{}, err
	}
	if driver.Status != models.DriverActive {
		return models.Shift{}, ErrDriverInactive
	}

	route, err := sc.catalog.RouteByID(routeID)
	if err != nil {
		return models.Shift{}, err
	}

	unlock := sc.locks.lock(driverID, routeID, date)
	defer unlock()

	if _, err := sc.Validator().ValidateAssignment(driverID, routeID, date, startTime, 0); err != nil {
		return models.Shift{}, err
	}

	shift := models.Shift{
		DriverID:        driverID,
		RouteID:         routeID,
		DriverName:      driver.Name,
		DriverLicense:   driver.LicenseNumber,
		RouteName:       route.Name,
		StartDate:       date,
		StartTime:       startTime,
		DurationMinutes: route.DurationMinutes,
		Status:          models.ShiftActive,
	}
	if err := sc.shifts.Insert(&shift); err != nil {
		return models.Shift{}, err
	}
	return shift, nil
}

// EditShift re-validates and replaces an existing shift in place. The shift
// being edited is excluded from conflict checks so a no-op re-save succeeds.
// Identity and status are preserved.
func (sc *Scheduler) EditShift(shiftID, driverID, routeID uint, date, startTime string) (models.Shift, error) {
	if _, err := sc.shifts.ShiftByID(shiftID); err != nil {
		return models.Shift{}, err
	}

	driver, err := sc.catalog.DriverByID(driverID)
	if err != nil {
		return models.Shift{}, err
	}
	if driver.Status != models.DriverActive {
		return models.Shift{}, ErrDriverInactive
	}

	route, err := sc.catalog.RouteByID(routeID)
	if err != nil {
		return models.Shift{}, err
	}

	unlock := sc.locks.lock(driverID, routeID, date)
	defer unlock()

	if _, err := sc.Validator().ValidateAssignment(driverID, routeID, date, startTime, shiftID); err != nil {
		return models.Shift{}, err
	}

	shift := models.Shift{
		DriverID:        driverID,
		RouteID:         routeID,
		DriverName:      driver.Name,
		DriverLicense:   driver.LicenseNumber,
		RouteName:       route.Name,
		StartDate:       date,
		StartTime:       startTime,
		DurationMinutes: route.DurationMinutes,
		Status:          models.ShiftActive,
	}
	if err := sc.shifts.Replace(shiftID, &shift); err != nil {
		return models.Shift{}, err
	}
	return shift, nil
}

// DeleteShift removes a shift. Unknown ids fail with ErrShiftNotFound and
// leave the shift list unchanged.
func (sc *Scheduler) DeleteShift(shiftID uint) error {
	return sc.shifts.Remove(shiftID)
}

// CancelShift moves an active shift to "cancelled", taking it out of all
// conflict and daily-limit checks.
func (sc *Scheduler) CancelShift(shiftID uint) (models.Shift, error) {
	shift, err := sc.shifts.ShiftByID(shiftID)
	if err != nil {
		return models.Shift{}, err
	}
	if shift.Status != models.ShiftActive {
		return models.Shift{}, ErrShiftNotActive
	}
	if err := sc.shifts.UpdateStatus(shiftID, models.ShiftCancelled); err != nil {
		return models.Shift{}, err
	}
	shift.Status = models.ShiftCancelled
	return shift, nil
}
