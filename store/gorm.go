package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smart-parking/apperrors"
	bookingModel "smart-parking/models/booking"
	sensorModel "smart-parking/models/sensor"
	slotModel "smart-parking/models/slot"
	userModel "smart-parking/models/user"
)

// GormStore backs the store port with a relational database through GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open GORM connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetSlot(ctx context.Context, id string) (*slotModel.Slot, error) {
	var sl slotModel.Slot
	if err := s.db.WithContext(ctx).First(&sl, "id = ?", id).Error; err != nil {
		return nil, translate("get slot", EntitySlot, id, err)
	}
	return &sl, nil
}

func (s *GormStore) GetSlots(ctx context.Context) ([]slotModel.Slot, error) {
	var slots []slotModel.Slot
	if err := s.db.WithContext(ctx).Order("id").Find(&slots).Error; err != nil {
		return nil, apperrors.Store("list slots", err)
	}
	return slots, nil
}

func (s *GormStore) PutSlot(ctx context.Context, sl *slotModel.Slot) error {
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(sl).Error; err != nil {
		return apperrors.Store("put slot", err)
	}
	return nil
}

func (s *GormStore) GetSensor(ctx context.Context, id string) (*sensorModel.Sensor, error) {
	var sn sensorModel.Sensor
	if err := s.db.WithContext(ctx).First(&sn, "id = ?", id).Error; err != nil {
		return nil, translate("get sensor", EntitySensor, id, err)
	}
	return &sn, nil
}

func (s *GormStore) GetSensors(ctx context.Context) ([]sensorModel.Sensor, error) {
	var sensors []sensorModel.Sensor
	if err := s.db.WithContext(ctx).Order("id").Find(&sensors).Error; err != nil {
		return nil, apperrors.Store("list sensors", err)
	}
	return sensors, nil
}

func (s *GormStore) PutSensor(ctx context.Context, sn *sensorModel.Sensor) error {
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(sn).Error; err != nil {
		return apperrors.Store("put sensor", err)
	}
	return nil
}

func (s *GormStore) GetBooking(ctx context.Context, id string) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	if err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, translate("get booking", EntityBooking, id, err)
	}
	return &b, nil
}

func (s *GormStore) GetBookingsByUser(ctx context.Context, userID string) ([]bookingModel.Booking, error) {
	var bookings []bookingModel.Booking
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, apperrors.Store("list bookings", err)
	}
	return bookings, nil
}

func (s *GormStore) PutBooking(ctx context.Context, b *bookingModel.Booking) error {
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(b).Error; err != nil {
		return apperrors.Store("put booking", err)
	}
	return nil
}

func (s *GormStore) GetUser(ctx context.Context, id string) (*userModel.User, error) {
	var u userModel.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate("get user", EntityUser, id, err)
	}
	return &u, nil
}

func (s *GormStore) PutUser(ctx context.Context, u *userModel.User) error {
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(u).Error; err != nil {
		return apperrors.Store("put user", err)
	}
	return nil
}

func translate(op, entity, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(entity, id)
	}
	return apperrors.Store(op, err)
}
