package constants

// User roles as issued by the external identity service.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Defaults applied when the identity token omits profile claims.
const (
	DefaultGuestName  = "Guest User"
	DefaultGuestEmail = "guest@example.com"
)
