package scheduling

import (
	"sync"

	"fleet_console/internal/models"
)

// MemoryStore is an in-memory Catalog + ShiftStore. It exists so the
// validator and scheduler can be exercised without a database.
type MemoryStore struct {
	mu      sync.Mutex
	drivers map[uint]models.Driver
	routes  map[uint]models.Route
	shifts  map[uint]models.Shift
	nextID  uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		drivers: make(map[uint]models.Driver),
		routes:  make(map[uint]models.Route),
		shifts:  make(map[uint]models.Shift),
		nextID:  1,
	}
}

func (s *MemoryStore) PutDriver(d models.Driver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drivers[d.ID] = d
}

func (s *MemoryStore) PutRoute(r models.Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[r.ID] = r
}

func (s *MemoryStore) DriverByID(id uint) (models.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drivers[id]
	if !ok {
		return models.Driver{}, ErrDriverNotFound
	}
	return d, nil
}

func (s *MemoryStore) RouteByID(id uint) (models.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.routes[id]
	if !ok {
		return models.Route{}, ErrRouteNotFound
	}
	return r, nil
}

func (s *MemoryStore) ShiftByID(id uint) (models.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shifts[id]
	if !ok {
		return models.Shift{}, ErrShiftNotFound
	}
	return sh, nil
}

func (s *MemoryStore) ActiveByDriverDate(driverID uint, date string) ([]models.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Shift
	for _, sh := range s.shifts {
		if sh.DriverID == driverID && sh.StartDate == date && sh.Status == models.ShiftActive {
			out = append(out, sh)
		}
	}
	return out, nil
}

func (s *MemoryStore) ActiveByRouteDate(routeID uint, date string) ([]models.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Shift
	for _, sh := range s.shifts {
		if sh.RouteID == routeID && sh.StartDate == date && sh.Status == models.ShiftActive {
			out = append(out, sh)
		}
	}
	return out, nil
}

func (s *MemoryStore) Insert(shift *models.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	shift.ID = s.nextID
	s.nextID++
	s.shifts[shift.ID] = *shift
	return nil
}

func (s *MemoryStore) Replace(id uint, shift *models.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.shifts[id]
	if !ok {
		return ErrShiftNotFound
	}
	shift.ID = id
	shift.Status = existing.Status
	shift.CreatedAt = existing.CreatedAt
	s.shifts[id] = *shift
	return nil
}

func (s *MemoryStore) Remove(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.shifts[id]; !ok {
		return ErrShiftNotFound
	}
	delete(s.shifts, id)
	return nil
}

func (s *MemoryStore) UpdateStatus(id uint, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shifts[id]
	if !ok {
		return ErrShiftNotFound
	}
	sh.Status = status
	s.shifts[id] = sh
	return nil
}

// ShiftCount reports how many shift records exist, any status.
func (s *MemoryStore) ShiftCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.shifts)
}
