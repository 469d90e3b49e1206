package domain

import (
	"errors"
	"time"
)

const (
	RoleDonor    = "donor"
	RoleReceiver = "receiver"
	RoleAdmin    = "admin"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrRoleRequired = errors.New("role must be selected on first sign-in")
	ErrInvalidRole  = errors.New("invalid role")
)

// User mirrors the users/{uid} document. The uid comes from Firebase Auth.
// Role is fixed at first sign-in; only an admin override can change it.
type User struct {
	UID       string    `json:"uid" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	Role      string    `json:"role" firestore:"role"`
	Banned    bool      `json:"banned" firestore:"banned"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	LastLogin time.Time `json:"last_login" firestore:"lastLogin"`
}

func ValidRole(role string) bool {
	return role == RoleDonor || role == RoleReceiver || role == RoleAdmin
}
