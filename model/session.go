package model

import "time"

// Session is the authenticated cashier context handed to the catalog and checkout.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	CashierID uint64    `json:"cashier_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	SessionID string    `json:"session_id"`
	CashierID uint64    `json:"cashier_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// BackendLogin is the token and user the backend returns from POST /login.
type BackendLogin struct {
	Token string `json:"token"`
	User  struct {
		ID       uint64 `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"data"`
}
