package models

import "time"

// UserDB represents an account record in the database.
// PasswordHash is never serialized into API responses.
type UserDB struct {
	ID           int64     `json:"id" db:"id"`                 // Primary key
	Email        string    `json:"email" db:"email"`           // Unique email, case-sensitive exact match
	PasswordHash string    `json:"-" db:"password_hash"`       // bcrypt hash, never the plaintext
	Role         string    `json:"role" db:"role"`             // Free-text role label, defaults to USER
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
}

// RoleUser is the role assigned to every account at registration.
const RoleUser = "USER"
