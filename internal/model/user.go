package model

import "time"

// User represents an application user record as stored in the `users`
// table. Password material is kept only as a bcrypt digest; the plaintext
// never leaves the register/login handlers. Rows are write-once: the
// service exposes no update or delete endpoint for users.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password, never compared with ==.
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
}
