package scheduling

import (
	"errors"
	"testing"

	"fleet_console/internal/models"

	"gorm.io/gorm"
)

const testDate = "2024-05-01"

func newTestStore() *MemoryStore {
	store := NewMemoryStore()
	store.PutDriver(models.Driver{
		Model:         gorm.Model{ID: 1},
		Name:          "Ana Morales",
		LicenseNumber: "LIC-001",
		Status:        models.DriverActive,
	})
	store.PutDriver(models.Driver{
		Model:         gorm.Model{ID: 2},
		Name:          "Luis Prado",
		LicenseNumber: "LIC-002",
		Status:        models.DriverInactive,
	})
	store.PutRoute(models.Route{
		Model:           gorm.Model{ID: 1},
		Name:            "Centro - Terminal Norte",
		DurationMinutes: 120,
	})
	store.PutRoute(models.Route{
		Model:           gorm.Model{ID: 2},
		Name:            "Centro - Aeropuerto",
		DurationMinutes: 60,
	})
	return store
}

func mustAssign(t *testing.T, sc *Scheduler, driverID, routeID uint, date, start string) models.Shift {
	t.Helper()
	shift, err := sc.AssignShift(driverID, routeID, date, start)
	if err != nil {
		t.Fatalf("AssignShift(%d, %d, %s, %s) failed: %v", driverID, routeID, date, start, err)
	}
	return shift
}

func TestValidateAssignmentUnknownRoute(t *testing.T) {
	store := newTestStore()
	v := Validator{Catalog: store, Shifts: store}

	if _, err := v.ValidateAssignment(1, 99, testDate, "08:00", 0); !errors.Is(err, ErrRouteNotFound) {
		t.Fatalf("expected ErrRouteNotFound, got %v", err)
	}
}

func TestValidateAssignmentDriverOverlap(t *testing.T) {
	store := newTestStore()
	sc := NewScheduler(store, store)
	mustAssign(t, sc, 1, 1, testDate, "08:00") // occupies [08:00,10:00)

	v := sc.Validator()

	// [09:00,11:00) overlaps [08:00,10:00) on a different route.
	if _, err := v.ValidateAssignment(1, 2, testDate, "09:00", 0); !errors.Is(err, ErrDriverConflict) {
		t.Fatalf("expected ErrDriverConflict, got %v", err)
	}

	// Touching window [10:00,11:00) is allowed.
	total, err := v.ValidateAssignment(1, 2, testDate, "10:00", 0)
	if err != nil {
		t.Fatalf("touching window rejected: %v", err)
	}
	if total != 180 {
		t.Errorf("total minutes = %d, want 180", total)
	}

	// A different date is a separate axis.
	if _, err := v.ValidateAssignment(1, 2, "2024-05-02", "09:00", 0); err != nil {
		t.Fatalf("other date rejected: %v", err)
	}
}

func TestValidateAssignmentRouteOverlap(t *testing.T) {
	store := newTestStore()
	sc := NewScheduler(store, store)
	mustAssign(t, sc, 1, 1, testDate, "08:00")

	// Different driver, same route, overlapping window.
	store.PutDriver(models.Driver{Model: gorm.Model{ID: 3}, Name: "Sofía Rey", Status: models.DriverActive})
	if _, err := sc.Validator().ValidateAssignment(3, 1, testDate, "09:30", 0); !errors.Is(err, ErrRouteConflict) {
		t.Fatalf("expected ErrRouteConflict, got %v", err)
	}
}

func TestValidateAssignmentDailyLimit(t *testing.T) {
	store := newTestStore()
	sc := NewScheduler(store, store)

	// Three 2h shifts: 6h assigned.
	mustAssign(t, sc, 1, 1, testDate, "06:00")
	mustAssign(t, sc, 1, 1, testDate, "08:00")
	mustAssign(t, sc, 1, 1, testDate, "10:00")

	// A fourth 2h shift would reach 8h > 7.5h.
	_, err := sc.Validator().ValidateAssignment(1, 1, testDate, "18:00", 0)
	var limitErr *DailyLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected DailyLimitError, got %v", err)
	}
	if limitErr.TotalMinutes != 480 {
		t.Errorf("reported total = %d minutes, want 480", limitErr.TotalMinutes)
	}

	// A 1h route still fits: 7h <= 7.5h.
	total, err := sc.Validator().ValidateAssignment(1, 2, testDate, "18:00", 0)
	if err != nil {
		t.Fatalf("1h shift under the cap rejected: %v", err)
	}
	if total != 420 {
		t.Errorf("total minutes = %d, want 420", total)
	}
}

func TestValidateAssignmentIgnoresInactiveShifts(t *testing.T) {
	store := newTestStore()
	sc := NewScheduler(store, store)
	shift := mustAssign(t, sc, 1, 1, testDate, "08:00")

	if _, err := sc.CancelShift(shift.ID); err != nil {
		t.Fatalf("CancelShift failed: %v", err)
	}

	// The cancelled shift no longer blocks the window.
	if _, err := sc.Validator().ValidateAssignment(1, 1, testDate, "09:00", 0); err != nil {
		t.Fatalf("window blocked by cancelled shift: %v", err)
	}
}

func TestValidateAssignmentExcludesOwnShift(t *testing.T) {
	store := newTestStore()
	sc := NewScheduler(store, store)
	shift := mustAssign(t, sc, 1, 1, testDate, "08:00")

	// Re-validating the same slot while excluding the shift itself succeeds.
	if _, err := sc.Validator().ValidateAssignment(1, 1, testDate, "08:00", shift.ID); err != nil {
		t.Fatalf("self-conflict on re-validation: %v", err)
	}
	// Without the exclusion it conflicts.
	if _, err := sc.Validator().ValidateAssignment(1, 1, testDate, "08:00", 0); err == nil {
		t.Fatal("expected conflict without exclusion")
	}
}

func TestValidateAssignmentBadStartTime(t *testing.T) {
	store := newTestStore()
	v := Validator{Catalog: store, Shifts: store}
	if _, err := v.ValidateAssignment(1, 1, testDate, "25:00", 0); err == nil {
		t.Fatal("expected error for out-of-range start time")
	}
}
