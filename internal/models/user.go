package models

import (
	"time"
)

// User is the account record consumed by this service.
// Only id, username and phone are used; everything else belongs to the account system.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Phone     string    `json:"-" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Identity is a caller resolved from a verified token.
type Identity struct {
	ID       int64
	Username string
	Phone    string
	Admin    bool
}
