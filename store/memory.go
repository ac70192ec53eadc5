package store

import (
	"context"
	"sort"
	"sync"

	"smart-parking/apperrors"
	bookingModel "smart-parking/models/booking"
	sensorModel "smart-parking/models/sensor"
	slotModel "smart-parking/models/slot"
	userModel "smart-parking/models/user"
)

// MemoryStore is a map-backed store. It exists for tests and for running
// the service without a database (DB_DRIVER=memory); last writer wins per
// key, same as the hosted backend it stands in for.
type MemoryStore struct {
	mu       sync.RWMutex
	slots    map[string]slotModel.Slot
	sensors  map[string]sensorModel.Sensor
	bookings map[string]bookingModel.Booking
	users    map[string]userModel.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		slots:    make(map[string]slotModel.Slot),
		sensors:  make(map[string]sensorModel.Sensor),
		bookings: make(map[string]bookingModel.Booking),
		users:    make(map[string]userModel.User),
	}
}

func (s *MemoryStore) GetSlot(_ context.Context, id string) (*slotModel.Slot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sl, ok := s.slots[id]
	if !ok {
		return nil, apperrors.NotFound(EntitySlot, id)
	}
	return &sl, nil
}

func (s *MemoryStore) GetSlots(_ context.Context) ([]slotModel.Slot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slots := make([]slotModel.Slot, 0, len(s.slots))
	for _, sl := range s.slots {
		slots = append(slots, sl)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].ID < slots[j].ID })
	return slots, nil
}

func (s *MemoryStore) PutSlot(_ context.Context, sl *slotModel.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[sl.ID] = *sl
	return nil
}

func (s *MemoryStore) GetSensor(_ context.Context, id string) (*sensorModel.Sensor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sn, ok := s.sensors[id]
	if !ok {
		return nil, apperrors.NotFound(EntitySensor, id)
	}
	return &sn, nil
}

func (s *MemoryStore) GetSensors(_ context.Context) ([]sensorModel.Sensor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sensors := make([]sensorModel.Sensor, 0, len(s.sensors))
	for _, sn := range s.sensors {
		sensors = append(sensors, sn)
	}
	sort.Slice(sensors, func(i, j int) bool { return sensors[i].ID < sensors[j].ID })
	return sensors, nil
}

func (s *MemoryStore) PutSensor(_ context.Context, sn *sensorModel.Sensor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sensors[sn.ID] = *sn
	return nil
}

func (s *MemoryStore) GetBooking(_ context.Context, id string) (*bookingModel.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, apperrors.NotFound(EntityBooking, id)
	}
	return &b, nil
}

func (s *MemoryStore) GetBookingsByUser(_ context.Context, userID string) ([]bookingModel.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var bookings []bookingModel.Booking
	for _, b := range s.bookings {
		if b.UserID != nil && *b.UserID == userID {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].CreatedAt > bookings[j].CreatedAt })
	return bookings, nil
}

func (s *MemoryStore) PutBooking(_ context.Context, b *bookingModel.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = *b
	return nil
}

func (s *MemoryStore) GetUser(_ context.Context, id string) (*userModel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFound(EntityUser, id)
	}
	return &u, nil
}

func (s *MemoryStore) PutUser(_ context.Context, u *userModel.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = *u
	return nil
}
