package domain

import "time"

// User represents an admin identity
// Password holds a bcrypt hash, never the plain value
type User struct {
	ID        int64
	Username  string
	Password  string
	Role      string
	CreatedAt time.Time
}

// RoleAdmin is the only role the system currently knows about
const RoleAdmin = "admin"
