package scheduling

import (
	"fmt"
	"sync"
)

// dateLocks serializes validate-then-write sequences touching the same driver
// or route on the same date. Without this, two concurrent assignments can
// both read a conflict-free snapshot and both commit, producing an
// overlapping pair.
//
// Every caller acquires the driver key before the route key, so lock order
// is consistent and no cycle can form.
type dateLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func newDateLocks() *dateLocks {
	return &dateLocks{m: make(map[string]*sync.Mutex)}
}

func (l *dateLocks) get(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	mu, ok := l.m[key]
	if !ok {
		mu = &sync.Mutex{}
		l.m[key] = mu
	}
	return mu
}

// lock acquires both composite locks and returns the release function.
func (l *dateLocks) lock(driverID, routeID uint, date string) func() {
	dm := l.get(fmt.Sprintf("driver/%d/%s", driverID, date))
	rm := l.get(fmt.Sprintf("route/%d/%s", routeID, date))
	dm.Lock()
	rm.Lock()
	return func() {
		rm.Unlock()
		dm.Unlock()
	}
}
