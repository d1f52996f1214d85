package constants

// Role names as stored on users and carried in access tokens
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
