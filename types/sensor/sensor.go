package sensor

import (
	"smart-parking/apperrors"
	sensorModel "smart-parking/models/sensor"
	"smart-parking/types"
)

// Report is the inbound occupancy/connectivity event posted by a sensor
// unit (POST /sensors/update). IsOccupied is a tri-state: absent means the
// sensor reported connectivity only.
type Report struct {
	SensorID     string `json:"sensorId" validate:"required,max=64"`
	SlotID       string `json:"slotId" validate:"required,max=64"`
	Status       string `json:"status" validate:"required,oneof=online offline"`
	IsOccupied   *bool  `json:"isOccupied,omitempty"`
	BatteryLevel *int   `json:"batteryLevel,omitempty" validate:"omitempty,min=0,max=100"`
}

// Validate rejects the report before it reaches the engine. The missing
// field message matches the sensor firmware contract.
func (r Report) Validate() error {
	if r.SensorID == "" || r.Status == "" || r.SlotID == "" {
		return apperrors.Validation("Sensor ID, status, and slot ID are required")
	}
	if !sensorModel.Connectivity(r.Status).IsValid() {
		return apperrors.Validation("status must be one of online, offline")
	}
	if err := types.Validator.Struct(r); err != nil {
		return apperrors.Validation("invalid sensor report: %v", err)
	}
	return nil
}

// Connectivity returns the reported link state as the model enum.
func (r Report) Connectivity() sensorModel.Connectivity {
	return sensorModel.Connectivity(r.Status)
}
