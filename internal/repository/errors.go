// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow the handler layer to
// distinguish between failure scenarios without inspecting driver error
// strings: ErrEmailExists marks a unique-index violation on users.email,
// ErrStudentNotFound marks reads and writes that matched no live row.
package repository

import "errors"

// ErrEmailExists is returned when an insert into users collides with the
// unique email index. Handlers translate this into an HTTP 400 with a
// generic duplicate message.
var ErrEmailExists = errors.New("email already exists")

// ErrStudentNotFound is returned when a student lookup, update or soft
// delete matches no row that is still live (deleted_at IS NULL).
// Handlers translate this into an HTTP 404 response.
var ErrStudentNotFound = errors.New("student not found")
