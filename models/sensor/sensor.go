package sensor

// Sensor is the hardware unit reporting occupancy and connectivity for
// exactly one slot. The relation is one-directional slot->sensor, so the
// sensor row itself carries no slot reference.
type Sensor struct {
	ID     string       `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Status Connectivity `gorm:"type:varchar(20);not null" json:"status"`

	// Percentage in [0,100]; nil when the hardware did not report it.
	BatteryLevel *int `gorm:"type:int" json:"batteryLevel,omitempty"`

	// Epoch millis. Only moves forward.
	LastPing int64 `gorm:"not null" json:"lastPing"`
}

// Connectivity is the reported link state of a sensor.
type Connectivity string

const (
	ConnectivityOnline  Connectivity = "online"
	ConnectivityOffline Connectivity = "offline"
)

func (c Connectivity) String() string {
	return string(c)
}

func (c Connectivity) IsValid() bool {
	return c == ConnectivityOnline || c == ConnectivityOffline
}
