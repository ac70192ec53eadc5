package slot

// Slot represents a single physical parking space tracked by the system.
// Status is only ever written by the reconciliation engine; a slot never
// transitions itself.
type Slot struct {
	ID       string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Status   Status `gorm:"type:varchar(20);not null" json:"status"`
	SensorID string `gorm:"type:varchar(64);not null;uniqueIndex" json:"sensorId"`
	Zone     string `gorm:"type:varchar(16);not null" json:"zone"`

	// Epoch millis. Non-decreasing per slot.
	UpdatedAt int64 `gorm:"not null" json:"updatedAt"`
}
