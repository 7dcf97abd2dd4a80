package domain

import (
	"context"

	"github.com/google/uuid"
)

type TenantStore interface {
	Create(ctx context.Context, t *Tenant) error
	GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*Tenant, error)
}

type NetworkStore interface {
	Create(ctx context.Context, n *NetworkDefinition) error
	GetByID(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*NetworkDefinition, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]NetworkSummary, error)
	Delete(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) error
}
