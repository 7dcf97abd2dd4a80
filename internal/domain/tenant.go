package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tenant owns networks. Requests authenticate as a tenant with an API key;
// only the key's SHA-256 hash is stored.
type Tenant struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	APIKeyHash string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
