package domain

import "time"

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// User owns exactly one cart and one order ledger; both live and die with
// the account.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Identity is what a verified credential resolves to. Every cart and order
// operation is scoped to it; no operation accepts a target user as input.
type Identity struct {
	UserID string
	Role   Role
}
