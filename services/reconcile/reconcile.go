package reconcile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"smart-parking/apperrors"
	bookingModel "smart-parking/models/booking"
	sensorModel "smart-parking/models/sensor"
	slotModel "smart-parking/models/slot"
	"smart-parking/store"
	bookingTypes "smart-parking/types/booking"
	sensorTypes "smart-parking/types/sensor"
)

// Engine applies inbound events to the slot/sensor/booking state behind
// the store port. It is stateless between calls: every operation reads
// current state, computes the next state and writes it back, one entity
// per write. Concurrent events racing on the same slot are not serialized
// here; the last write to reach the store wins.
type Engine struct {
	store  store.Store
	strict bool

	// Overridable for tests.
	now   func() int64
	newID func() string
}

// NewEngine creates an engine over st. With strict enabled, booking a
// slot that is not available fails with a ConflictError; the lenient
// default marks the slot booked unconditionally, the optimistic flow
// the dashboard expects.
func NewEngine(st store.Store, strict bool) *Engine {
	return &Engine{
		store:  st,
		strict: strict,
		now:    func() int64 { return time.Now().UnixMilli() },
		newID:  uuid.NewString,
	}
}

// UpdateRequest is one of the three normalized inbound events:
// sensor.Report, booking.CreateRequest or booking.PaymentResult.
type UpdateRequest interface {
	Validate() error
}

// Result carries whichever entities an applied event produced.
type Result struct {
	Sensor  *sensorModel.Sensor   `json:"sensor,omitempty"`
	Slot    *slotModel.Slot       `json:"slot,omitempty"`
	Booking *bookingModel.Booking `json:"booking,omitempty"`
}

// Apply dispatches a normalized event to the matching operation.
func (e *Engine) Apply(ctx context.Context, req UpdateRequest) (Result, error) {
	switch r := req.(type) {
	case sensorTypes.Report:
		sn, sl, err := e.ApplySensorReport(ctx, r)
		return Result{Sensor: sn, Slot: sl}, err
	case bookingTypes.CreateRequest:
		b, sl, err := e.CreateBooking(ctx, r)
		return Result{Booking: b, Slot: sl}, err
	case bookingTypes.PaymentResult:
		b, err := e.SettlePayment(ctx, r)
		return Result{Booking: b}, err
	default:
		return Result{}, apperrors.Validation("unsupported update request type %T", req)
	}
}

// ApplySensorReport records a sensor's connectivity and, when the report
// carries an occupancy flag, reconciles the slot status with it. A booked
// slot is never overridden by raw occupancy: a confirmed booking takes
// precedence over what the hardware sees. The sensor row is created on
// first contact.
func (e *Engine) ApplySensorReport(ctx context.Context, report sensorTypes.Report) (*sensorModel.Sensor, *slotModel.Slot, error) {
	if err := report.Validate(); err != nil {
		return nil, nil, err
	}
	now := e.now()

	sn, err := e.store.GetSensor(ctx, report.SensorID)
	if apperrors.IsNotFound(err) {
		sn = &sensorModel.Sensor{ID: report.SensorID}
	} else if err != nil {
		return nil, nil, err
	}

	sn.Status = report.Connectivity()
	if report.BatteryLevel != nil {
		sn.BatteryLevel = report.BatteryLevel
	}
	if now > sn.LastPing {
		sn.LastPing = now
	}
	if err := e.store.PutSensor(ctx, sn); err != nil {
		return nil, nil, err
	}

	// Connectivity-only reports leave the slot alone.
	if report.IsOccupied == nil {
		return sn, nil, nil
	}

	sl, err := e.store.GetSlot(ctx, report.SlotID)
	if err != nil {
		return sn, nil, err
	}

	switch {
	case sl.Status == slotModel.StatusAvailable && *report.IsOccupied:
		sl.Status = slotModel.StatusOccupied
	case sl.Status == slotModel.StatusOccupied && !*report.IsOccupied:
		sl.Status = slotModel.StatusAvailable
	}
	// An occupancy reading always stamps the slot, even when it was a
	// no-op on status (booked slot, or reading agrees with state).
	if now > sl.UpdatedAt {
		sl.UpdatedAt = now
	}
	if err := e.store.PutSlot(ctx, sl); err != nil {
		return sn, nil, err
	}
	return sn, sl, nil
}

// CreateBooking allocates a booking against a slot and marks the slot
// booked. In strict mode the slot must currently be available; the
// lenient default books it regardless of prior state.
func (e *Engine) CreateBooking(ctx context.Context, req bookingTypes.CreateRequest) (*bookingModel.Booking, *slotModel.Slot, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	sl, err := e.store.GetSlot(ctx, req.SlotID)
	if err != nil {
		return nil, nil, err
	}
	if e.strict && sl.Status != slotModel.StatusAvailable {
		return nil, nil, apperrors.Conflict("slot %s is %s, not available", sl.ID, sl.Status)
	}

	now := e.now()
	start := req.StartTime
	if start == 0 {
		start = now
	}

	b := &bookingModel.Booking{
		ID:            e.newID(),
		UserID:        req.UserID,
		SlotID:        req.SlotID,
		StartTime:     start,
		EndTime:       start + int64(req.Duration)*bookingModel.HourMillis,
		Duration:      req.Duration,
		Status:        bookingModel.StatusPending,
		PaymentMethod: req.Method(),
		PaymentStatus: bookingModel.PaymentStatusPending,
		Amount:        bookingModel.ComputeAmount(req.Duration),
		CreatedAt:     now,
	}
	if err := e.store.PutBooking(ctx, b); err != nil {
		return nil, nil, err
	}

	sl.Status = slotModel.StatusBooked
	if now > sl.UpdatedAt {
		sl.UpdatedAt = now
	}
	if err := e.store.PutSlot(ctx, sl); err != nil {
		return b, nil, err
	}
	return b, sl, nil
}

// SettlePayment records a payment outcome against an existing booking.
// It touches only the payment method, payment status and updatedAt; the
// booking lifecycle and the slot are left untouched, even on failure.
func (e *Engine) SettlePayment(ctx context.Context, res bookingTypes.PaymentResult) (*bookingModel.Booking, error) {
	if err := res.Validate(); err != nil {
		return nil, err
	}

	b, err := e.store.GetBooking(ctx, res.BookingID)
	if err != nil {
		return nil, err
	}

	now := e.now()
	b.PaymentMethod = res.Method()
	b.PaymentStatus = res.Outcome()
	if now > b.UpdatedAt {
		b.UpdatedAt = now
	}
	if err := e.store.PutBooking(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
