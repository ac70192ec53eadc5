package slot

// Status is the occupancy state of a parking slot.
type Status string

const (
	StatusAvailable Status = "available"
	StatusOccupied  Status = "occupied"
	StatusBooked    Status = "booked"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusBooked:
		return true
	default:
		return false
	}
}

// IsValidStatusTransition reports whether a slot may move from one status
// to another. Sensors drive available<->occupied; bookings drive
// available->booked. A booked slot is never released by anything specified
// here, and a sensor reading never overrides a booking.
func IsValidStatusTransition(from, to Status) bool {
	switch from {
	case StatusAvailable:
		return to == StatusOccupied || to == StatusBooked
	case StatusOccupied:
		return to == StatusAvailable
	default:
		return false
	}
}

// GetAllStatuses returns all valid slot statuses
func GetAllStatuses() []Status {
	return []Status{StatusAvailable, StatusOccupied, StatusBooked}
}
