package booking

import (
	"smart-parking/apperrors"
	bookingModel "smart-parking/models/booking"
	"smart-parking/types"
)

// CreateRequest is the inbound booking event (POST /bookings). UserID is
// filled from the verified token by the auth middleware, never from the
// body; nil means a guest booking.
type CreateRequest struct {
	UserID        *string `json:"userId,omitempty"`
	SlotID        string  `json:"slotId" validate:"required,max=64"`
	StartTime     int64   `json:"startTime" validate:"omitempty,min=0"`
	Duration      int     `json:"duration" validate:"required"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,oneof=qris idcard"`
}

func (r CreateRequest) Validate() error {
	if r.SlotID == "" {
		return apperrors.Validation("Slot ID is required")
	}
	if !bookingModel.IsValidDuration(r.Duration) {
		return apperrors.Validation("duration must be between %d and %d hours",
			bookingModel.MinDuration, bookingModel.MaxDuration)
	}
	if !bookingModel.PaymentMethod(r.PaymentMethod).IsValid() {
		return apperrors.Validation("paymentMethod must be one of qris, idcard")
	}
	if err := types.Validator.Struct(r); err != nil {
		return apperrors.Validation("invalid booking request: %v", err)
	}
	return nil
}

// Method returns the requested payment method as the model enum.
func (r CreateRequest) Method() bookingModel.PaymentMethod {
	return bookingModel.PaymentMethod(r.PaymentMethod)
}

// PaymentResult is the inbound settlement event
// (POST /bookings/:id/payment). It records the outcome of a payment
// attempt; it never advances the booking lifecycle.
type PaymentResult struct {
	BookingID     string `json:"bookingId" validate:"required,max=64"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=qris idcard"`
	PaymentStatus string `json:"paymentStatus" validate:"required,oneof=pending paid failed"`
}

func (r PaymentResult) Validate() error {
	if r.BookingID == "" {
		return apperrors.Validation("Booking ID is required")
	}
	if !bookingModel.PaymentMethod(r.PaymentMethod).IsValid() {
		return apperrors.Validation("paymentMethod must be one of qris, idcard")
	}
	if !bookingModel.PaymentStatus(r.PaymentStatus).IsValid() {
		return apperrors.Validation("paymentStatus must be one of pending, paid, failed")
	}
	if err := types.Validator.Struct(r); err != nil {
		return apperrors.Validation("invalid payment result: %v", err)
	}
	return nil
}

// Method returns the settled payment method as the model enum.
func (r PaymentResult) Method() bookingModel.PaymentMethod {
	return bookingModel.PaymentMethod(r.PaymentMethod)
}

// Outcome returns the settled payment status as the model enum.
func (r PaymentResult) Outcome() bookingModel.PaymentStatus {
	return bookingModel.PaymentStatus(r.PaymentStatus)
}
