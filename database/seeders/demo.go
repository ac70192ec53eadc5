package seeders

import (
	"context"
	"log"
	"time"

	sensorModel "smart-parking/models/sensor"
	slotModel "smart-parking/models/slot"
	"smart-parking/store"
)

func intPtr(v int) *int { return &v }

// SeedDemoData loads the demo parking lot (10 slots across zones A-D with
// their sensors) into an empty store. Existing data is left untouched.
func SeedDemoData(ctx context.Context, st store.Store) error {
	log.Printf("🔍 Checking demo parking data...")

	existing, err := st.GetSlots(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	nowMillis := time.Now().UnixMilli()

	slots := []slotModel.Slot{
		{ID: "slot1", Status: slotModel.StatusAvailable, SensorID: "sensor1", Zone: "A", UpdatedAt: nowMillis},
		{ID: "slot2", Status: slotModel.StatusOccupied, SensorID: "sensor2", Zone: "A", UpdatedAt: nowMillis},
		{ID: "slot3", Status: slotModel.StatusAvailable, SensorID: "sensor3", Zone: "A", UpdatedAt: nowMillis},
		{ID: "slot4", Status: slotModel.StatusBooked, SensorID: "sensor4", Zone: "B", UpdatedAt: nowMillis},
		{ID: "slot5", Status: slotModel.StatusAvailable, SensorID: "sensor5", Zone: "B", UpdatedAt: nowMillis},
		{ID: "slot6", Status: slotModel.StatusAvailable, SensorID: "sensor6", Zone: "B", UpdatedAt: nowMillis},
		{ID: "slot7", Status: slotModel.StatusOccupied, SensorID: "sensor7", Zone: "C", UpdatedAt: nowMillis},
		{ID: "slot8", Status: slotModel.StatusAvailable, SensorID: "sensor8", Zone: "C", UpdatedAt: nowMillis},
		{ID: "slot9", Status: slotModel.StatusAvailable, SensorID: "sensor9", Zone: "C", UpdatedAt: nowMillis},
		{ID: "slot10", Status: slotModel.StatusBooked, SensorID: "sensor10", Zone: "D", UpdatedAt: nowMillis},
	}

	sensors := []sensorModel.Sensor{
		{ID: "sensor1", Status: sensorModel.ConnectivityOnline, BatteryLevel: intPtr(85), LastPing: nowMillis},
		{ID: "sensor2", Status: sensorModel.ConnectivityOnline, BatteryLevel: intPtr(72), LastPing: nowMillis},
		{ID: "sensor3", Status: sensorModel.ConnectivityOffline, BatteryLevel: intPtr(30), LastPing: nowMillis - time.Hour.Milliseconds()},
		{ID: "sensor4", Status: sensorModel.ConnectivityOnline, BatteryLevel: intPtr(95), LastPing: nowMillis},
		{ID: "sensor5", Status: sensorModel.ConnectivityOnline, BatteryLevel: intPtr(65), LastPing: nowMillis},
		{ID: "sensor6", Status: sensorModel.ConnectivityOnline, BatteryLevel: intPtr(78), LastPing: nowMillis},
		{ID: "sensor7", Status: sensorModel.ConnectivityOnline, BatteryLevel: intPtr(92), LastPing: nowMillis},
		{ID: "sensor8", Status: sensorModel.ConnectivityOffline, BatteryLevel: intPtr(15), LastPing: nowMillis - 2*time.Hour.Milliseconds()},
		{ID: "sensor9", Status: sensorModel.ConnectivityOnline, BatteryLevel: intPtr(88), LastPing: nowMillis},
		{ID: "sensor10", Status: sensorModel.ConnectivityOnline, BatteryLevel: intPtr(76), LastPing: nowMillis},
	}

	for i := range sensors {
		if err := st.PutSensor(ctx, &sensors[i]); err != nil {
			return err
		}
	}
	for i := range slots {
		if err := st.PutSlot(ctx, &slots[i]); err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d parking slots and %d sensors", len(slots), len(sensors))
	return nil
}
