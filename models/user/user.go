package user

// User mirrors the subject issued by the external identity service. The
// core only ever touches it as a foreign key on bookings; rows are created
// lazily the first time an authenticated subject books a slot.
type User struct {
	ID        string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string `gorm:"type:varchar(255);not null" json:"name"`
	Email     string `gorm:"type:varchar(255)" json:"email"`
	Role      string `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt int64  `gorm:"not null" json:"createdAt"`
}
