package reconcile

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-parking/apperrors"
	bookingModel "smart-parking/models/booking"
	sensorModel "smart-parking/models/sensor"
	slotModel "smart-parking/models/slot"
	"smart-parking/store"
	bookingTypes "smart-parking/types/booking"
	sensorTypes "smart-parking/types/sensor"
)

type fakeClock struct {
	t    int64
	step int64
}

func (c *fakeClock) now() int64 {
	c.t += c.step
	return c.t
}

func newTestEngine(t *testing.T, strict bool) (*Engine, *store.MemoryStore, *fakeClock) {
	t.Helper()
	st := store.NewMemoryStore()
	clock := &fakeClock{t: 1700000000000, step: 1000}
	e := NewEngine(st, strict)
	e.now = clock.now
	seq := 0
	e.newID = func() string {
		seq++
		return fmt.Sprintf("B%d", seq)
	}
	return e, st, clock
}

func seedSlot(t *testing.T, st *store.MemoryStore, id string, status slotModel.Status) {
	t.Helper()
	err := st.PutSlot(context.Background(), &slotModel.Slot{
		ID:        id,
		Status:    status,
		SensorID:  "sensor1",
		Zone:      "A",
		UpdatedAt: 1699999999000,
	})
	require.NoError(t, err)
}

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

func TestApplySensorReportOccupiesAvailableSlot(t *testing.T) {
	e, st, _ := newTestEngine(t, false)
	seedSlot(t, st, "slot1", slotModel.StatusAvailable)

	sn, sl, err := e.ApplySensorReport(context.Background(), sensorTypes.Report{
		SensorID:   "sensor1",
		SlotID:     "slot1",
		Status:     "online",
		IsOccupied: boolPtr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, sensorModel.ConnectivityOnline, sn.Status)
	assert.Equal(t, slotModel.StatusOccupied, sl.Status)

	stored, err := st.GetSlot(context.Background(), "slot1")
	require.NoError(t, err)
	assert.Equal(t, slotModel.StatusOccupied, stored.Status)
}

func TestApplySensorReportFreesOccupiedSlot(t *testing.T) {
	e, st, _ := newTestEngine(t, false)
	seedSlot(t, st, "slot1", slotModel.StatusOccupied)

	_, sl, err := e.ApplySensorReport(context.Background(), sensorTypes.Report{
		SensorID:   "sensor1",
		SlotID:     "slot1",
		Status:     "online",
		IsOccupied: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, slotModel.StatusAvailable, sl.Status)
}

func TestApplySensorReportNeverOverridesBookedSlot(t *testing.T) {
	for _, occupied := range []bool{true, false} {
		t.Run(fmt.Sprintf("occupied=%v", occupied), func(t *testing.T) {
			e, st, _ := newTestEngine(t, false)
			seedSlot(t, st, "slot1", slotModel.StatusBooked)

			_, sl, err := e.ApplySensorReport(context.Background(), sensorTypes.Report{
				SensorID:   "sensor1",
				SlotID:     "slot1",
				Status:     "online",
				IsOccupied: boolPtr(occupied),
			})
			require.NoError(t, err)
			assert.Equal(t, slotModel.StatusBooked, sl.Status)
		})
	}
}

func TestApplySensorReportIdempotent(t *testing.T) {
	e, st, _ := newTestEngine(t, false)
	seedSlot(t, st, "slot1", slotModel.StatusAvailable)

	report := sensorTypes.Report{
		SensorID:     "sensor1",
		SlotID:       "slot1",
		Status:       "online",
		IsOccupied:   boolPtr(true),
		BatteryLevel: intPtr(80),
	}

	first, _, err := e.ApplySensorReport(context.Background(), report)
	require.NoError(t, err)
	second, sl, err := e.ApplySensorReport(context.Background(), report)
	require.NoError(t, err)

	// Same state after the second application, aside from lastPing.
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.BatteryLevel, second.BatteryLevel)
	assert.Greater(t, second.LastPing, first.LastPing)
	assert.Equal(t, slotModel.StatusOccupied, sl.Status)

}

func TestApplySensorReportConnectivityOnly(t *testing.T) {
	e, st, _ := newTestEngine(t, false)
	seedSlot(t, st, "slot1", slotModel.StatusAvailable)
	require.NoError(t, st.PutSensor(context.Background(), &sensorModel.Sensor{
		ID:           "sensor1",
		Status:       sensorModel.ConnectivityOnline,
		BatteryLevel: intPtr(55),
		LastPing:     1699999999000,
	}))

	sn, sl, err := e.ApplySensorReport(context.Background(), sensorTypes.Report{
		SensorID: "sensor1",
		SlotID:   "slot1",
		Status:   "offline",
	})
	require.NoError(t, err)

	assert.Nil(t, sl, "no occupancy flag, slot must not be touched")
	assert.Equal(t, sensorModel.ConnectivityOffline, sn.Status)
	// Battery retained when the report omits it.
	require.NotNil(t, sn.BatteryLevel)
	assert.Equal(t, 55, *sn.BatteryLevel)

	stored, err := st.GetSlot(context.Background(), "slot1")
	require.NoError(t, err)
	assert.Equal(t, int64(1699999999000), stored.UpdatedAt)
}

func TestApplySensorReportCreatesSensorOnFirstContact(t *testing.T) {
	e, st, _ := newTestEngine(t, false)
	seedSlot(t, st, "slot1", slotModel.StatusAvailable)

	sn, _, err := e.ApplySensorReport(context.Background(), sensorTypes.Report{
		SensorID: "sensor9",
		SlotID:   "slot1",
		Status:   "online",
	})
	require.NoError(t, err)
	assert.Equal(t, "sensor9", sn.ID)

	stored, err := st.GetSensor(context.Background(), "sensor9")
	require.NoError(t, err)
	assert.Equal(t, sensorModel.ConnectivityOnline, stored.Status)
}

func TestApplySensorReportUnknownSlot(t *testing.T) {
	e, _, _ := newTestEngine(t, false)

	_, _, err := e.ApplySensorReport(context.Background(), sensorTypes.Report{
		SensorID:   "sensor1",
		SlotID:     "nope",
		Status:     "online",
		IsOccupied: boolPtr(true),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestApplySensorReportRejectsMissingSlotID(t *testing.T) {
	e, st, _ := newTestEngine(t, false)

	_, _, err := e.ApplySensorReport(context.Background(), sensorTypes.Report{
		SensorID: "sensor1",
		Status:   "online",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Sensor ID, status, and slot ID are required", err.Error())

	// Nothing was written.
	_, err = st.GetSensor(context.Background(), "sensor1")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestApplySensorReportRejectsBadConnectivity(t *testing.T) {
	e, _, _ := newTestEngine(t, false)

	_, _, err := e.ApplySensorReport(context.Background(), sensorTypes.Report{
		SensorID: "sensor1",
		SlotID:   "slot1",
		Status:   "sleeping",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestTimestampsNeverDecrease(t *testing.T) {
	e, st, clock := newTestEngine(t, false)
	seedSlot(t, st, "slot1", slotModel.StatusAvailable)

	report := sensorTypes.Report{
		SensorID:   "sensor1",
		SlotID:     "slot1",
		Status:     "online",
		IsOccupied: boolPtr(true),
	}
	sn1, sl1, err := e.ApplySensorReport(context.Background(), report)
	require.NoError(t, err)

	// A clock that runs backwards must not pull timestamps back.
	clock.step = -5000
	sn2, sl2, err := e.ApplySensorReport(context.Background(), report)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, sn2.LastPing, sn1.LastPing)
	assert.GreaterOrEqual(t, sl2.UpdatedAt, sl1.UpdatedAt)
}

func TestCreateBooking(t *testing.T) {
	e, st, _ := newTestEngine(t, false)
	seedSlot(t, st, "slot1", slotModel.StatusAvailable)

	b, sl, err := e.CreateBooking(context.Background(), bookingTypes.CreateRequest{
		SlotID:        "slot1",
		StartTime:     1700000100000,
		Duration:      2,
		PaymentMethod: "qris",
	})
	require.NoError(t, err)

	assert.Equal(t, "B1", b.ID)
	assert.Nil(t, b.UserID)
	assert.Equal(t, int64(10000), b.Amount)
	assert.Equal(t, bookingModel.StatusPending, b.Status)
	assert.Equal(t, bookingModel.PaymentStatusPending, b.PaymentStatus)
	assert.Equal(t, bookingModel.PaymentMethodQRIS, b.PaymentMethod)
	assert.Equal(t, b.StartTime+2*int64(bookingModel.HourMillis), b.EndTime)
	assert.Equal(t, slotModel.StatusBooked, sl.Status)

	stored, err := st.GetSlot(context.Background(), "slot1")
	require.NoError(t, err)
	assert.Equal(t, slotModel.StatusBooked, stored.Status)
}

func TestCreateBookingLenientBooksNonAvailableSlot(t *testing.T) {
	e, st, _ := newTestEngine(t, false)
	seedSlot(t, st, "slot1", slotModel.StatusOccupied)

	_, sl, err := e.CreateBooking(context.Background(), bookingTypes.CreateRequest{
		SlotID:        "slot1",
		Duration:      1,
		PaymentMethod: "idcard",
	})
	require.NoError(t, err)
	assert.Equal(t, slotModel.StatusBooked, sl.Status)
}

func TestCreateBookingStrictRejectsNonAvailableSlot(t *testing.T) {
	e, st, _ := newTestEngine(t, true)
	seedSlot(t, st, "slot1", slotModel.StatusOccupied)

	_, _, err := e.CreateBooking(context.Background(), bookingTypes.CreateRequest{
		SlotID:        "slot1",
		Duration:      1,
		PaymentMethod: "qris",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	stored, err := st.GetSlot(context.Background(), "slot1")
	require.NoError(t, err)
	assert.Equal(t, slotModel.StatusOccupied, stored.Status)
}

func TestCreateBookingUnknownSlot(t *testing.T) {
	e, _, _ := newTestEngine(t, false)

	_, _, err := e.CreateBooking(context.Background(), bookingTypes.CreateRequest{
		SlotID:        "nope",
		Duration:      1,
		PaymentMethod: "qris",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateBookingRejectsInvalidDuration(t *testing.T) {
	e, _, _ := newTestEngine(t, false)

	for _, d := range []int{0, 5, -1, 100} {
		_, _, err := e.CreateBooking(context.Background(), bookingTypes.CreateRequest{
			SlotID:        "slot1",
			Duration:      d,
			PaymentMethod: "qris",
		})
		require.Error(t, err, "duration %d", d)
		assert.True(t, apperrors.IsValidation(err))
	}
}

func TestSettlePayment(t *testing.T) {
	e, st, _ := newTestEngine(t, false)
	seedSlot(t, st, "slot1", slotModel.StatusAvailable)

	b, _, err := e.CreateBooking(context.Background(), bookingTypes.CreateRequest{
		SlotID:        "slot1",
		Duration:      2,
		PaymentMethod: "qris",
	})
	require.NoError(t, err)

	settled, err := e.SettlePayment(context.Background(), bookingTypes.PaymentResult{
		BookingID:     b.ID,
		PaymentMethod: "qris",
		PaymentStatus: "paid",
	})
	require.NoError(t, err)

	assert.Equal(t, bookingModel.PaymentStatusPaid, settled.PaymentStatus)
	// Settlement records the payment outcome only; the lifecycle stays
	// pending and the slot stays booked.
	assert.Equal(t, bookingModel.StatusPending, settled.Status)

	sl, err := st.GetSlot(context.Background(), "slot1")
	require.NoError(t, err)
	assert.Equal(t, slotModel.StatusBooked, sl.Status)
}

func TestSettlePaymentFailureKeepsSlotBooked(t *testing.T) {
	e, st, _ := newTestEngine(t, false)
	seedSlot(t, st, "slot1", slotModel.StatusAvailable)

	b, _, err := e.CreateBooking(context.Background(), bookingTypes.CreateRequest{
		SlotID:        "slot1",
		Duration:      1,
		PaymentMethod: "qris",
	})
	require.NoError(t, err)

	settled, err := e.SettlePayment(context.Background(), bookingTypes.PaymentResult{
		BookingID:     b.ID,
		PaymentMethod: "qris",
		PaymentStatus: "failed",
	})
	require.NoError(t, err)
	assert.Equal(t, bookingModel.PaymentStatusFailed, settled.PaymentStatus)

	sl, err := st.GetSlot(context.Background(), "slot1")
	require.NoError(t, err)
	assert.Equal(t, slotModel.StatusBooked, sl.Status)
}

func TestSettlePaymentUnknownBooking(t *testing.T) {
	e, _, _ := newTestEngine(t, false)

	_, err := e.SettlePayment(context.Background(), bookingTypes.PaymentResult{
		BookingID:     "nope",
		PaymentMethod: "qris",
		PaymentStatus: "paid",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSettlePaymentRejectsInvalidStatus(t *testing.T) {
	e, _, _ := newTestEngine(t, false)

	_, err := e.SettlePayment(context.Background(), bookingTypes.PaymentResult{
		BookingID:     "B1",
		PaymentMethod: "qris",
		PaymentStatus: "refunded",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestApplyDispatchesByEventType(t *testing.T) {
	e, st, _ := newTestEngine(t, false)
	seedSlot(t, st, "slot1", slotModel.StatusAvailable)

	res, err := e.Apply(context.Background(), sensorTypes.Report{
		SensorID: "sensor1",
		SlotID:   "slot1",
		Status:   "online",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Sensor)
	assert.Nil(t, res.Booking)

	res, err = e.Apply(context.Background(), bookingTypes.CreateRequest{
		SlotID:        "slot1",
		Duration:      3,
		PaymentMethod: "idcard",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Booking)
	assert.Equal(t, int64(15000), res.Booking.Amount)

	res, err = e.Apply(context.Background(), bookingTypes.PaymentResult{
		BookingID:     res.Booking.ID,
		PaymentMethod: "idcard",
		PaymentStatus: "paid",
	})
	require.NoError(t, err)
	assert.Equal(t, bookingModel.PaymentStatusPaid, res.Booking.PaymentStatus)

	_, err = e.Apply(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
