package domain

import (
	"time"

	"github.com/google/uuid"
)

// Network is a read-only discrete Bayesian network. Implementations must be
// acyclic and give every variable a non-empty domain.
type Network interface {
	Variables() []string
	Parents(variable string) []string
	Children(variable string) []string
	Domain(variable string) []string

	// Probability returns the CPT entry P(hypothesis | givens). The match is
	// exact: hypothesis holds one variable and givens hold exactly its parents.
	Probability(hypothesis, givens Assignment) (float64, error)

	// TopologicalSort orders every variable so that parents precede children.
	TopologicalSort() []string

	// Combinations enumerates every assignment of vars that agrees with partial.
	Combinations(vars []string, partial Assignment) []Assignment
}

// CPTRow holds the distribution of one variable for a single assignment of
// its parents. Given is empty for root variables.
type CPTRow struct {
	Given         map[string]string  `json:"given,omitempty" yaml:"given,omitempty"`
	Probabilities map[string]float64 `json:"probabilities" yaml:"probabilities"`
}

type VariableDefinition struct {
	Name    string   `json:"name" yaml:"name"`
	Domain  []string `json:"domain" yaml:"domain"`
	Parents []string `json:"parents,omitempty" yaml:"parents,omitempty"`
	CPT     []CPTRow `json:"cpt" yaml:"cpt"`
}

// NetworkDefinition is the serialisable form of a network as stored and
// exchanged over the API.
type NetworkDefinition struct {
	ID          uuid.UUID            `json:"id" yaml:"-"`
	TenantID    uuid.UUID            `json:"tenant_id" yaml:"-"`
	Name        string               `json:"name" yaml:"name"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Variables   []VariableDefinition `json:"variables" yaml:"variables"`
	CreatedAt   time.Time            `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time            `json:"updated_at" yaml:"-"`
}

// NetworkSummary is the listing form of a stored network.
type NetworkSummary struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	VariableCount int       `json:"variable_count"`
	CreatedAt     time.Time `json:"created_at"`
}
