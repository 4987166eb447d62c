package model

import "time"

// User is an account that may call the planning API.  Roles follow the
// values stored in the JWT "role" claim: ADMIN manages room data and may do
// everything, INSTRUCTOR may inspect rooms and run distributions.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password.
//	Role         – role name (ADMIN | INSTRUCTOR).
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
}
