package store

import (
	"context"

	bookingModel "smart-parking/models/booking"
	sensorModel "smart-parking/models/sensor"
	slotModel "smart-parking/models/slot"
	userModel "smart-parking/models/user"
)

// Store is the persistence port the reconciliation engine writes through.
// Every call is atomic at its own key only; no multi-key transaction is
// assumed or required.
// Get* return a NotFoundError when the entity is absent and a StoreError
// on any other failure; Put* upsert.
type Store interface {
	GetSlot(ctx context.Context, id string) (*slotModel.Slot, error)
	GetSlots(ctx context.Context) ([]slotModel.Slot, error)
	PutSlot(ctx context.Context, s *slotModel.Slot) error

	GetSensor(ctx context.Context, id string) (*sensorModel.Sensor, error)
	GetSensors(ctx context.Context) ([]sensorModel.Sensor, error)
	PutSensor(ctx context.Context, s *sensorModel.Sensor) error

	GetBooking(ctx context.Context, id string) (*bookingModel.Booking, error)
	GetBookingsByUser(ctx context.Context, userID string) ([]bookingModel.Booking, error)
	PutBooking(ctx context.Context, b *bookingModel.Booking) error

	GetUser(ctx context.Context, id string) (*userModel.User, error)
	PutUser(ctx context.Context, u *userModel.User) error
}

// Entity kind labels used in NotFoundError values.
const (
	EntitySlot    = "slot"
	EntitySensor  = "sensor"
	EntityBooking = "booking"
	EntityUser    = "user"
)
