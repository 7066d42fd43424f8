package booking

import (
	"fmt"
	"sync"

	"github.com/mikededo/hubbl-sub002/internal/schedule"
)

// zoneLocks serializes admissions per (zone, date). The lock is held across
// the read-validate-write of Book so that two concurrent requests cannot
// both pass the capacity check against the same stale snapshot.
//
// Entries are never evicted; the map is bounded by the number of distinct
// zone/date pairs booked during the process lifetime.
type zoneLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newZoneLocks() *zoneLocks {
	return &zoneLocks{locks: make(map[string]*sync.Mutex)}
}

func (zl *zoneLocks) lock(zoneID int, date schedule.Date) (unlock func()) {
	key := fmt.Sprintf("%d/%s", zoneID, date)

	zl.mu.Lock()
	m, ok := zl.locks[key]
	if !ok {
		m = &sync.Mutex{}
		zl.locks[key] = m
	}
	zl.mu.Unlock()

	m.Lock()
	return m.Unlock
}
