package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	Category  Category   `json:"category" db:"category"`
	Title     string     `json:"title" db:"title"`
	Body      string     `json:"body" db:"body"`
	Data      Payload    `json:"data,omitempty" db:"data"`
	IsRead    bool       `json:"is_read" db:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

type Category string

const (
	CategoryProjectUpdate     Category = "project_update"
	CategoryFileUpload        Category = "file_upload"
	CategoryInvoice           Category = "invoice"
	CategoryMessage           Category = "message"
	CategoryContractCompleted Category = "contract_completed"
	CategoryCustom            Category = "custom"
)

// Payload is the opaque application data attached to a notification,
// stored as JSONB and forwarded verbatim to delivery channels.
type Payload map[string]string

func (p Payload) Value() (driver.Value, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p)
}

func (p *Payload) Scan(src interface{}) error {
	if src == nil {
		*p = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into Payload", src)
	}
	return json.Unmarshal(b, p)
}

// DeviceToken is one push-capable endpoint registered by a user's device.
// Registration happens client-side; this service only reads tokens and
// prunes the ones the push provider reports as dead.
type DeviceToken struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	Platform  *string   `json:"platform,omitempty" db:"platform"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ErrorCode classifies a per-token push delivery failure.
type ErrorCode string

const (
	ErrTokenNotRegistered ErrorCode = "token-not-registered"
	ErrTokenInvalid       ErrorCode = "token-invalid"
	ErrRateLimited        ErrorCode = "rate-limited"
	ErrUnavailable        ErrorCode = "unavailable"
	ErrInternal           ErrorCode = "internal"
)

// Permanent reports whether the failure means the token will never work
// again and should be removed from the store.
func (e ErrorCode) Permanent() bool {
	return e == ErrTokenNotRegistered || e == ErrTokenInvalid
}

// DeliveryResult is the outcome of one attempted send to one target within
// a multicast. ErrorCode is set iff Success is false.
type DeliveryResult struct {
	Target    DeviceToken
	Success   bool
	ErrorCode ErrorCode
}

type CreateNotificationInput struct {
	UserID   uuid.UUID `json:"user_id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Category Category  `json:"category"`
	Data     Payload   `json:"data"`
}
