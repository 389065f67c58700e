package domain

import "github.com/google/uuid"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is the profile the identity provider yields for an authenticated
// request. The core treats it as an opaque identity for ownership and role
// checks; accounts themselves live in the hosted auth service.
type User struct {
	ID    uuid.UUID
	Name  string
	Email string
	Phone string
	Role  Role
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
