package domain

import (
	"errors"
	"time"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleFinance  = "finance"
	RoleAdmin    = "admin"
)

var ErrUserNotFound = errors.New("user not found")

// User models the authenticated actor. The source of truth is the identity
// provider claim plus the backend profile; the console treats it as immutable
// for the length of a session.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Role           string    `json:"role"`
	OrganizationID string    `json:"organization_id,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// ApproverRoles are the roles permitted to decide on pending spends.
var ApproverRoles = []string{RoleManager, RoleFinance, RoleAdmin}

// IsApprover reports whether any of the given roles may approve or reject.
func IsApprover(roles []string) bool {
	for _, r := range roles {
		for _, a := range ApproverRoles {
			if r == a {
				return true
			}
		}
	}
	return false
}
