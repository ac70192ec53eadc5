package booking

// Status is the booking lifecycle state. Only pending is ever produced by
// the reconciliation flow; active/completed/cancelled are reserved for a
// future expiry/cancellation feature and kept here so stored rows stay
// forward-compatible.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the booking can no longer change state
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// PaymentMethod is how the booking is paid.
type PaymentMethod string

const (
	PaymentMethodQRIS   PaymentMethod = "qris"
	PaymentMethodIDCard PaymentMethod = "idcard"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodQRIS || m == PaymentMethodIDCard
}

// PaymentStatus is the settlement outcome recorded against a booking.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	default:
		return false
	}
}

// GetAllStatuses returns all valid booking statuses
func GetAllStatuses() []Status {
	return []Status{StatusPending, StatusActive, StatusCompleted, StatusCancelled}
}
