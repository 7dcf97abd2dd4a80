package bayesnet

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/Harshitk-cp/bayes/internal/domain"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// NormalizationTolerance bounds how far a CPT row may drift from summing to 1.
const NormalizationTolerance = 1e-6

type entry struct {
	variable string
	value    string
	givens   domain.Assignment
	p        float64
}

// Builder assembles a Net. Methods record the first error encountered and
// Build reports it, so calls can be made without checking each one.
type Builder struct {
	name        string
	description string
	order       []string
	vars        map[string]*variable
	entries     []entry
	err         error
}

func NewBuilder(name string) *Builder {
	return &Builder{name: name, vars: make(map[string]*variable)}
}

func (b *Builder) Describe(description string) *Builder {
	b.description = description
	return b
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// AddVariable declares a variable and its domain. Declaration order is kept
// and used to break ties in the topological order.
func (b *Builder) AddVariable(name string, values ...string) *Builder {
	if _, ok := b.vars[name]; ok {
		b.fail(fmt.Errorf("%w: %s", ErrDuplicateVariable, name))
		return b
	}
	if len(values) == 0 {
		b.fail(fmt.Errorf("%w: %s", ErrEmptyDomain, name))
		return b
	}
	v := &variable{
		name:   name,
		index:  len(b.order),
		domain: make([]string, 0, len(values)),
		values: make(map[string]bool, len(values)),
	}
	for _, val := range values {
		if v.values[val] {
			continue
		}
		v.values[val] = true
		v.domain = append(v.domain, val)
	}
	b.vars[name] = v
	b.order = append(b.order, name)
	return b
}

// SetParents replaces the parent list of child.
func (b *Builder) SetParents(child string, parents ...string) *Builder {
	v, ok := b.vars[child]
	if !ok {
		b.fail(fmt.Errorf("%w: %s", ErrUnknownVariable, child))
		return b
	}
	seen := make(map[string]bool, len(parents))
	v.parents = v.parents[:0]
	for _, p := range parents {
		if seen[p] {
			continue
		}
		seen[p] = true
		v.parents = append(v.parents, p)
	}
	return b
}

// SetProbability records P(hypothesis | givens) = p. The hypothesis must name
// exactly one variable and givens must name exactly its parents.
func (b *Builder) SetProbability(hypothesis, givens domain.Assignment, p float64) *Builder {
	if len(hypothesis) != 1 {
		b.fail(fmt.Errorf("set probability %s: hypothesis must hold one variable", hypothesis))
		return b
	}
	for name, value := range hypothesis {
		b.entries = append(b.entries, entry{variable: name, value: value, givens: givens.Clone(), p: p})
	}
	return b
}

// Build validates the declared structure and tables and returns an
// immutable Net. The builder must not be used after Build succeeds.
func (b *Builder) Build() (*Net, error) {
	if b.err != nil {
		return nil, b.err
	}

	for _, name := range b.order {
		v := b.vars[name]
		v.children = nil
		v.parentSet = make(map[string]bool, len(v.parents))
		v.cpt = make(map[string]map[string]float64)
		for _, p := range v.parents {
			if _, ok := b.vars[p]; !ok {
				return nil, fmt.Errorf("%w: %s (parent of %s)", ErrUnknownVariable, p, name)
			}
			if p == name {
				return nil, fmt.Errorf("%w: %s is its own parent", ErrCycle, name)
			}
			v.parentSet[p] = true
		}
	}
	for _, name := range b.order {
		for _, p := range b.vars[name].parents {
			parent := b.vars[p]
			parent.children = append(parent.children, name)
		}
	}

	sorted, err := b.sort()
	if err != nil {
		return nil, err
	}

	if err := b.fillTables(); err != nil {
		return nil, err
	}

	return &Net{
		name:        b.name,
		description: b.description,
		order:       slices.Clone(b.order),
		sorted:      sorted,
		vars:        b.vars,
	}, nil
}

func (b *Builder) sort() ([]string, error) {
	g := simple.NewDirectedGraph()
	for _, name := range b.order {
		g.AddNode(simple.Node(b.vars[name].index))
	}
	for _, name := range b.order {
		child := b.vars[name]
		for _, p := range child.parents {
			g.SetEdge(g.NewEdge(simple.Node(b.vars[p].index), simple.Node(child.index)))
		}
	}

	nodes, err := topo.SortStabilized(g, func(ns []graph.Node) {
		sort.Slice(ns, func(i, j int) bool { return ns[i].ID() < ns[j].ID() })
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCycle, err)
	}

	sorted := make([]string, len(nodes))
	for i, n := range nodes {
		sorted[i] = b.order[n.ID()]
	}
	return sorted, nil
}

func (b *Builder) fillTables() error {
	for _, e := range b.entries {
		v, ok := b.vars[e.variable]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownVariable, e.variable)
		}
		if !v.values[e.value] {
			return fmt.Errorf("%w: %s=%s", ErrUnknownValue, e.variable, e.value)
		}
		if e.p < 0 || e.p > 1 || math.IsNaN(e.p) {
			return fmt.Errorf("%w: P(%s=%s | %s) = %g", ErrInvalidProbability, e.variable, e.value, e.givens, e.p)
		}
		if len(e.givens) != len(v.parents) {
			return fmt.Errorf("%w: givens %s must name exactly the parents of %s", ErrNoEntry, e.givens, e.variable)
		}
		for p, val := range e.givens {
			if !v.parentSet[p] {
				return fmt.Errorf("%w: %s is not a parent of %s", ErrNoEntry, p, e.variable)
			}
			if !b.vars[p].values[val] {
				return fmt.Errorf("%w: %s=%s", ErrUnknownValue, p, val)
			}
		}
		key := rowKey(e.givens)
		row, ok := v.cpt[key]
		if !ok {
			row = make(map[string]float64, len(v.domain))
			v.cpt[key] = row
		}
		if _, dup := row[e.value]; dup {
			return fmt.Errorf("%w: P(%s=%s | %s)", ErrDuplicateEntry, e.variable, e.value, e.givens)
		}
		row[e.value] = e.p
	}

	for _, name := range b.order {
		v := b.vars[name]
		for _, givens := range cartesian(v.parents, b.domainOf, nil) {
			if err := completeRow(v, givens); err != nil {
				return err
			}
		}
	}
	return nil
}

// completeRow checks one CPT row. A single missing value is inferred from the
// sum-to-one constraint.
func completeRow(v *variable, givens domain.Assignment) error {
	row := v.cpt[rowKey(givens)]
	if row == nil {
		row = make(map[string]float64, len(v.domain))
		v.cpt[rowKey(givens)] = row
	}

	var missing []string
	probs := make(stats.Float64Data, 0, len(v.domain))
	for _, val := range v.domain {
		p, ok := row[val]
		if !ok {
			missing = append(missing, val)
			continue
		}
		probs = append(probs, p)
	}

	total := 0.0
	if len(probs) > 0 {
		var err error
		if total, err = stats.Sum(probs); err != nil {
			return fmt.Errorf("sum row of %s given %s: %w", v.name, givens, err)
		}
	}

	switch len(missing) {
	case 0:
	case 1:
		rest := 1 - total
		if rest < -NormalizationTolerance {
			return fmt.Errorf("%w: %s given %s sums to %g", ErrNotNormalized, v.name, givens, total)
		}
		row[missing[0]] = math.Max(rest, 0)
		return nil
	default:
		return fmt.Errorf("%w: %s given %s is missing %v", ErrIncompleteCPT, v.name, givens, missing)
	}

	if math.Abs(total-1) > NormalizationTolerance {
		return fmt.Errorf("%w: %s given %s sums to %g", ErrNotNormalized, v.name, givens, total)
	}
	return nil
}

func (b *Builder) domainOf(name string) []string {
	return b.vars[name].domain
}
