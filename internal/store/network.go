package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Harshitk-cp/bayes/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NetworkStore struct {
	db *pgxpool.Pool
}

func NewNetworkStore(db *pgxpool.Pool) *NetworkStore {
	return &NetworkStore{db: db}
}

func (s *NetworkStore) Create(ctx context.Context, n *domain.NetworkDefinition) error {
	variablesJSON, err := json.Marshal(n.Variables)
	if err != nil {
		return fmt.Errorf("marshal variables: %w", err)
	}

	err = s.db.QueryRow(ctx,
		`INSERT INTO networks (tenant_id, name, description, variables, variable_count)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		n.TenantID, n.Name, n.Description, variablesJSON, len(n.Variables),
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *NetworkStore) GetByID(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*domain.NetworkDefinition, error) {
	n := &domain.NetworkDefinition{}
	var variablesJSON []byte
	err := s.db.QueryRow(ctx,
		`SELECT id, tenant_id, name, description, variables, created_at, updated_at
		 FROM networks WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	).Scan(&n.ID, &n.TenantID, &n.Name, &n.Description, &variablesJSON, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(variablesJSON, &n.Variables); err != nil {
		return nil, fmt.Errorf("unmarshal variables: %w", err)
	}
	return n, nil
}

func (s *NetworkStore) List(ctx context.Context, tenantID uuid.UUID) ([]domain.NetworkSummary, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, description, variable_count, created_at
		 FROM networks WHERE tenant_id = $1
		 ORDER BY created_at DESC`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.NetworkSummary
	for rows.Next() {
		var n domain.NetworkSummary
		if err := rows.Scan(&n.ID, &n.Name, &n.Description, &n.VariableCount, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *NetworkStore) Delete(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM networks WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
