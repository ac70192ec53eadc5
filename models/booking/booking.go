package booking

// Booking represents a reservation of one slot for a fixed number of hours
// together with its payment record. A booking is immutable after creation
// except for the payment method/status and the updatedAt stamp.
type Booking struct {
	ID string `gorm:"primaryKey;type:varchar(64)" json:"id"`

	// Nil for guest bookings.
	UserID *string `gorm:"type:varchar(64);index" json:"userId"`

	SlotID string `gorm:"type:varchar(64);not null;index" json:"slotId"`

	// Epoch millis; EndTime = StartTime + Duration hours.
	StartTime int64 `gorm:"not null" json:"startTime"`
	EndTime   int64 `gorm:"not null" json:"endTime"`

	// Whole hours, one of the offered durations.
	Duration int `gorm:"not null" json:"duration"`

	Status        Status        `gorm:"type:varchar(20);not null" json:"status"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"paymentMethod"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null" json:"paymentStatus"`

	// Minor-unit integer, RatePerHour x Duration.
	Amount int64 `gorm:"not null" json:"amount"`

	CreatedAt int64 `gorm:"not null" json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt,omitempty"`
}
