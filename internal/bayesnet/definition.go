package bayesnet

import (
	"fmt"

	"github.com/Harshitk-cp/bayes/internal/domain"
)

// FromDefinition builds and validates a Net from its serialisable form.
func FromDefinition(def *domain.NetworkDefinition) (*Net, error) {
	if def == nil {
		return nil, fmt.Errorf("nil network definition")
	}
	b := NewBuilder(def.Name).Describe(def.Description)
	for _, v := range def.Variables {
		b.AddVariable(v.Name, v.Domain...)
	}
	for _, v := range def.Variables {
		if len(v.Parents) > 0 {
			b.SetParents(v.Name, v.Parents...)
		}
		for _, row := range v.CPT {
			for value, p := range row.Probabilities {
				b.SetProbability(domain.Assignment{v.Name: value}, row.Given, p)
			}
		}
	}
	return b.Build()
}

// Definition renders the network with a complete CPT: one row for every
// parent assignment, each listing every domain value.
func (n *Net) Definition() *domain.NetworkDefinition {
	def := &domain.NetworkDefinition{
		Name:        n.name,
		Description: n.description,
		Variables:   make([]domain.VariableDefinition, 0, len(n.order)),
	}
	for _, name := range n.order {
		v := n.vars[name]
		vd := domain.VariableDefinition{
			Name:    name,
			Domain:  n.Domain(name),
			Parents: n.Parents(name),
		}
		for _, givens := range cartesian(v.parents, n.domainOf, nil) {
			row := domain.CPTRow{Probabilities: make(map[string]float64, len(v.domain))}
			if len(givens) > 0 {
				row.Given = givens
			}
			for val, p := range v.cpt[rowKey(givens)] {
				row.Probabilities[val] = p
			}
			vd.CPT = append(vd.CPT, row)
		}
		def.Variables = append(def.Variables, vd)
	}
	return def
}
