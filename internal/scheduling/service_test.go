package scheduling

import (
	"errors"
	"sync"
	"testing"

	"fleet_console/internal/models"

	"gorm.io/gorm"
)

func TestAssignShiftSnapshotsNames(t *testing.T) {
	store := newTestStore()
	sc := NewScheduler(store, store)

	shift := mustAssign(t, sc, 1, 1, testDate, "08:00")
	if shift.DriverName != "Ana Morales" || shift.DriverLicense != "LIC-001" {
		t.Errorf("driver snapshot = %q/%q", shift.DriverName, shift.DriverLicense)
	}
	if shift.RouteName != "Centro - Terminal Norte" {
		t.Errorf("route snapshot = %q", shift.RouteName)
	}
	if shift.DurationMinutes != 120 {
		t.Errorf("duration = %d, want 120 (inherited from route)", shift.DurationMinutes)
	}
	if shift.Status != models.ShiftActive {
		t.Errorf("status = %q, want active", shift.Status)
	}

	// Renaming the driver afterwards must not rewrite the stored snapshot.
	store.PutDriver(models.Driver{
		Model:         gorm.Model{ID: 1},
		Name:          "Ana Morales de Luna",
		LicenseNumber: "LIC-001",
		Status:        models.DriverActive,
	})
	got, err := store.ShiftByID(shift.ID)
	if err != nil {
		t.Fatalf("ShiftByID: %v", err)
	}
	if got.DriverName != "Ana Morales" {
		t.Errorf("snapshot changed after rename: %q", got.DriverName)
	}
}

func TestAssignShiftUnknownDriver(t *testing.T) {
	store := newTestStore()
	sc := NewScheduler(store, store)

	if _, err := sc.AssignShift(99, 1, testDate, "08:00"); !errors.Is(err, ErrDriverNotFound) {
		t.Fatalf("expected ErrDriverNotFound, got %v", err)
	}
}

func TestAssignShiftInactiveDriver(t *testing.T) {
	store := newTestStore()
	sc := NewScheduler(store, store)

	// Driver 2 is inactive; no time conflict exists, it must still fail.
	if _, err := sc.AssignShift(2, 1, testDate, "08:00"); !errors.Is(err, ErrDriverInactive) {
		t.Fatalf("expected ErrDriverInactive, got %v", err)
	}
	if store.ShiftCount() != 0 {
		t.Error("rejected assignment left a record behind")
	}
}

func TestAssignShiftRejectionLeavesStateUnchanged(t *testing.T) {
	store := newTestStore()
	sc := NewScheduler(store, store)
	mustAssign(t, sc, 1, 1, testDate, "08:00")

	if _, err := sc.AssignShift(1, 1, testDate, "09:00"); err == nil {
		t.Fatal("expected conflict")
	}
	if store.ShiftCount() != 1 {
		t.Errorf("shift count = %d after rejection, want 1", store.ShiftCount())
	}
}

func TestEditShiftNoOpResave(t *testing.T) {
	store := newTestStore()
	sc := NewScheduler(store, store)
	shift := mustAssign(t, sc, 1, 1, testDate, "08:00")

	same, err := sc.EditShift(shift.ID, 1, 1, testDate, "08:00")
	if err != nil {
		t.Fatalf("no-op re-save rejected: %v", err)
	}
	if same.ID != shift.ID {
		t.Errorf("edit changed identity: %d -> %d", shift.ID, same.ID)
	}
	if same.StartTime != "08:00" || same.DurationMinutes != 120 {
		t.Errorf("edit altered fields: %+v", same)
	}
}

func TestEditShiftMovesWindow(t *testing.T) {
	store := newTestStore()
	sc := NewScheduler(store, store)
	shift := mustAssign(t, sc, 1, 1, testDate, "08:00")

	moved, err := sc.EditShift(shift.ID, 1, 2, testDate, "12:00")
	if err != nil {
		t.Fatalf("EditShift failed: %v", err)
	}
	if moved.RouteID != 2 || moved.DurationMinutes != 60 {
		t.Errorf("edit did not adopt new route duration: %+v", moved)
	}
	if moved.RouteName != "Centro - Aeropuerto" {
		t.Errorf("route snapshot not refreshed: %q", moved.RouteName)
	}

	// The old window is free again.
	if _, err := sc.AssignShift(1, 1, testDate, "08:00"); err != nil {
		t.Fatalf("old window still blocked after edit: %v", err)
	}
}

func TestEditShiftUnknownID(t *testing.T) {
	store := newTestStore()
	sc := NewScheduler(store, store)

	if _, err := sc.EditShift(42, 1, 1, testDate, "08:00"); !errors.Is(err, ErrShiftNotFound) {
		t.Fatalf("expected ErrShiftNotFound, got %v", err)
	}
}

func TestDeleteShift(t *testing.T) {
	store := newTestStore()
	sc := NewScheduler(store, store)
	shift := mustAssign(t, sc, 1, 1, testDate, "08:00")

	if err := sc.DeleteShift(shift.ID); err != nil {
		t.Fatalf("DeleteShift failed: %v", err)
	}
	if store.ShiftCount() != 0 {
		t.Error("shift still present after delete")
	}

	if err := sc.DeleteShift(shift.ID); !errors.Is(err, ErrShiftNotFound) {
		t.Fatalf("expected ErrShiftNotFound, got %v", err)
	}
}

func TestCancelShift(t *testing.T) {
	store := newTestStore()
	sc := NewScheduler(store, store)
	shift := mustAssign(t, sc, 1, 1, testDate, "08:00")

	cancelled, err := sc.CancelShift(shift.ID)
	if err != nil {
		t.Fatalf("CancelShift failed: %v", err)
	}
	if cancelled.Status != models.ShiftCancelled {
		t.Errorf("status = %q, want cancelled", cancelled.Status)
	}

	if _, err := sc.CancelShift(shift.ID); !errors.Is(err, ErrShiftNotActive) {
		t.Fatalf("expected ErrShiftNotActive on second cancel, got %v", err)
	}
}

// Concurrent assignments against the same driver and date must never both
// pass validation: the invariants hold no matter who wins the race.
func TestAssignShiftConcurrentSameWindow(t *testing.T) {
	store := newTestStore()
	sc := NewScheduler(store, store)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = sc.AssignShift(1, 1, testDate, "08:00")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	if succeeded != 1 {
		t.Errorf("%d concurrent assignments succeeded for one window, want exactly 1", succeeded)
	}
	if store.ShiftCount() != 1 {
		t.Errorf("shift count = %d, want 1", store.ShiftCount())
	}
}
