package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	Email           string      `json:"email" db:"email"`
	PasswordHash    string      `json:"-" db:"password_hash"`
	Name            string      `json:"name" db:"name"`
	Role            string      `json:"role" db:"role"`
	IsAdmin         bool        `json:"is_admin" db:"is_admin"`
	IsEmailVerified bool        `json:"is_email_verified" db:"is_email_verified"`
	// FCMToken predates per-device token rows; consulted only when a user
	// has no device_tokens entries.
	FCMToken    *string     `json:"-" db:"fcm_token"`
	Preferences Preferences `json:"preferences" db:"preferences"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

type UserRole string

const (
	RoleContractor UserRole = "contractor"
	RoleCustomer   UserRole = "customer"
)

// Preferences maps a notification preference key (e.g. notif_invoices) to
// its enablement. A missing key means enabled; only an explicit false
// disables the channel.
type Preferences map[string]bool

func (p Preferences) Value() (driver.Value, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p)
}

func (p *Preferences) Scan(src interface{}) error {
	if src == nil {
		*p = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into Preferences", src)
	}
	return json.Unmarshal(b, p)
}

type BootstrapAdminInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
