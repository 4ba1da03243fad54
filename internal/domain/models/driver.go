package models

import "time"

// Driver hauls loads and owns the settlements that pay them.
type Driver struct {
	ID        int64     `json:"id"`
	OrgID     int64     `json:"orgId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// User mirrors the auth users table minus the password hash.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	OrgID    int64  `json:"orgId"`
}
