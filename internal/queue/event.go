// Package queue defines message payloads exchanged over the message broker.
package queue

// UserRegisteredEvent is published after a user row has been created.
// It carries enough information for downstream consumers to log or
// trigger a welcome notification without querying the primary database.
// The password digest is deliberately absent.
type UserRegisteredEvent struct {
	UserID       uint64 `json:"user_id"`
	Email        string `json:"email"`
	RegisteredAt string `json:"registered_at"`
}
