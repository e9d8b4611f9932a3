// Package model defines the domain types exchanged with the Paisa backend.
package model

import "github.com/shopspring/decimal"

func init() {
	// The backend binds money fields to BigDecimal and expects JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Role is the authorization role attached to a user.
type Role string

// Known roles. RoleAdmin is the elevated role required by the admin resources.
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the identity held by a session after login.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Known reports whether the role was actually reported by the backend.
func (r Role) Known() bool {
	return r != ""
}

// String returns the role name, or "unknown" when none was reported.
func (r Role) String() string {
	if r == "" {
		return "unknown"
	}
	return string(r)
}

// IsAdmin reports whether the user carries the elevated role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// AuthResponse is returned by the login and register endpoints.
type AuthResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// User extracts the identity part of the response.
func (r AuthResponse) User() User {
	return User{Email: r.Email, Name: r.Name, Role: r.Role}
}

// Credentials is the request body for login and register.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}
