package domain

import (
	"errors"
	"time"
)

// User represents a registered customer or bank staff member.
type User struct {
	ID             string
	Email          string
	FirstName      string
	LastName       string
	HashedPassword string
	Role           Role
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Role represents a user's access level.
type Role string

const (
	// RoleCustomer can operate on their own account only.
	RoleCustomer Role = "customer"

	// RoleAdmin can additionally approve loans.
	RoleAdmin Role = "admin"
)

var validRoles = map[Role]bool{
	RoleCustomer: true,
	RoleAdmin:    true,
}

// IsValid checks if the role is a valid role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanApproveLoans checks if the role may approve loan requests.
func (r Role) CanApproveLoans() bool {
	return r == RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
