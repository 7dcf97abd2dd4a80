// Package bayesnet holds the discrete Bayesian network data structure:
// variables, domains, parent/child adjacency and exact-match CPT lookup.
// Inference over it lives in package inference.
package bayesnet

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Harshitk-cp/bayes/internal/domain"
	"gonum.org/v1/gonum/stat/combin"
)

type variable struct {
	name      string
	index     int
	domain    []string
	values    map[string]bool
	parents   []string
	parentSet map[string]bool
	children  []string
	cpt       map[string]map[string]float64 // rowKey(parent assignment) -> value -> p
}

// Net is an immutable, validated Bayesian network. It is safe for
// concurrent use.
type Net struct {
	name        string
	description string
	order       []string
	sorted      []string
	vars        map[string]*variable
}

var _ domain.Network = (*Net)(nil)

func (n *Net) Name() string        { return n.name }
func (n *Net) Description() string { return n.description }

// Variables returns every variable in declaration order.
func (n *Net) Variables() []string {
	return slices.Clone(n.order)
}

func (n *Net) Parents(name string) []string {
	if v, ok := n.vars[name]; ok {
		return slices.Clone(v.parents)
	}
	return nil
}

func (n *Net) Children(name string) []string {
	if v, ok := n.vars[name]; ok {
		return slices.Clone(v.children)
	}
	return nil
}

func (n *Net) Domain(name string) []string {
	if v, ok := n.vars[name]; ok {
		return slices.Clone(v.domain)
	}
	return nil
}

func (n *Net) HasVariable(name string) bool {
	_, ok := n.vars[name]
	return ok
}

// Probability looks up P(hypothesis | givens). Givens must name exactly the
// parents of the hypothesis variable; nil givens only match root variables.
func (n *Net) Probability(hypothesis, givens domain.Assignment) (float64, error) {
	if len(hypothesis) != 1 {
		return 0, fmt.Errorf("%w: hypothesis %s must hold one variable", ErrNoEntry, hypothesis)
	}
	var name, value string
	for k, v := range hypothesis {
		name, value = k, v
	}

	v, ok := n.vars[name]
	if !ok {
		return 0, fmt.Errorf("%w: P(%s | %s): %w", ErrNoEntry, hypothesis, givens, ErrUnknownVariable)
	}
	if len(givens) != len(v.parents) {
		return 0, fmt.Errorf("%w: P(%s | %s)", ErrNoEntry, hypothesis, givens)
	}
	for p := range givens {
		if !v.parentSet[p] {
			return 0, fmt.Errorf("%w: P(%s | %s)", ErrNoEntry, hypothesis, givens)
		}
	}

	p, ok := v.cpt[rowKey(givens)][value]
	if !ok {
		return 0, fmt.Errorf("%w: P(%s | %s)", ErrNoEntry, hypothesis, givens)
	}
	return p, nil
}

// TopologicalSort returns all variables with parents before children. Ties
// are broken by declaration order, so the result is deterministic.
func (n *Net) TopologicalSort() []string {
	return slices.Clone(n.sorted)
}

// Combinations returns every assignment over vars that agrees with partial.
// Each result also carries the entries of partial. Variables in vars that
// the network does not know are ignored.
func (n *Net) Combinations(vars []string, partial domain.Assignment) []domain.Assignment {
	free := make([]string, 0, len(vars))
	for _, name := range vars {
		if _, fixed := partial[name]; fixed {
			continue
		}
		if _, ok := n.vars[name]; !ok {
			continue
		}
		free = append(free, name)
	}
	return cartesian(free, n.domainOf, partial)
}

func (n *Net) domainOf(name string) []string {
	return n.vars[name].domain
}

// cartesian enumerates the product of the domains of vars, each result
// extended with a copy of base.
func cartesian(vars []string, domainOf func(string) []string, base domain.Assignment) []domain.Assignment {
	if len(vars) == 0 {
		return []domain.Assignment{base.Clone()}
	}
	lens := make([]int, len(vars))
	for i, name := range vars {
		lens[i] = len(domainOf(name))
	}
	rows := combin.Cartesian(lens)
	out := make([]domain.Assignment, len(rows))
	for r, idx := range rows {
		a := make(domain.Assignment, len(base)+len(vars))
		for k, val := range base {
			a[k] = val
		}
		for i, name := range vars {
			a[name] = domainOf(name)[idx[i]]
		}
		out[r] = a
	}
	return out
}

// rowKey encodes a parent assignment independent of map iteration order.
func rowKey(givens domain.Assignment) string {
	var sb strings.Builder
	for _, k := range givens.Keys() {
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(givens[k])
		sb.WriteByte(0x1f)
	}
	return sb.String()
}
