package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Contract struct {
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	Status       string      `json:"status"`
	UserIDs      []uuid.UUID `json:"user_ids,omitempty"`
	ClientID     *uuid.UUID  `json:"client_id,omitempty"`
	ContractorID *uuid.UUID  `json:"contractor_id,omitempty"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

const ContractStatusCompleted = "completed"

func (c *Contract) IsCompleted() bool {
	return strings.EqualFold(c.Status, ContractStatusCompleted)
}

// Participants returns the distinct set of users attached to the contract.
func (c *Contract) Participants() []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	add := func(id uuid.UUID) {
		if id == uuid.Nil || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
	}
	for _, id := range c.UserIDs {
		add(id)
	}
	if c.ClientID != nil {
		add(*c.ClientID)
	}
	if c.ContractorID != nil {
		add(*c.ContractorID)
	}
	return out
}
