package state

import (
	"sync"
	"time"

	"github.com/gasdetection/iot-gas-bridge/pkg/types"
)

// MaxNotifications is the fixed capacity of the notification history.
const MaxNotifications = 100

// Store holds the authoritative sensor snapshot and the bounded
// notification history. The ingestion service is the only writer; the
// API and the websocket fan-out read consistent copies.
type Store struct {
	mu            sync.RWMutex
	snapshot      types.SensorSnapshot
	notifications []types.Notification
}

func New() *Store {
	return &Store{
		snapshot:      types.NewSensorSnapshot(),
		notifications: make([]types.Notification, 0, MaxNotifications),
	}
}

// Update applies fn to the snapshot and stamps LastUpdate, all under the
// write lock so readers never observe a torn snapshot.
func (s *Store) Update(fn func(*types.SensorSnapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.snapshot)
	s.snapshot.LastUpdate = time.Now()
}

func (s *Store) SetConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Connected = connected
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() types.SensorSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot
}

// AddNotification inserts n at the head of the history. Eviction of the
// oldest entry happens synchronously under the same lock as the insert,
// so the history never exceeds its capacity.
func (s *Store) AddNotification(n types.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = append([]types.Notification{n}, s.notifications...)
	if len(s.notifications) > MaxNotifications {
		s.notifications = s.notifications[:MaxNotifications]
	}
}

// Notifications returns the most recent notifications, newest first. The
// limit is clamped to the number of stored entries and the result is a
// copy, safe for the caller to keep.
func (s *Store) Notifications(limit int) []types.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit < 0 || limit > len(s.notifications) {
		limit = len(s.notifications)
	}

	result := make([]types.Notification, limit)
	copy(result, s.notifications[:limit])
	return result
}

func (s *Store) NotificationCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.notifications)
}
