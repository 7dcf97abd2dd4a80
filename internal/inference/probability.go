// Package inference computes exact probabilities over a discrete Bayesian
// network by enumeration: chain-rule joints, marginals as sums of joints and
// conditionals as ratios of marginals.
package inference

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Harshitk-cp/bayes/internal/domain"
	"gonum.org/v1/gonum/floats"
)

var errNotSingleton = errors.New("hypothesis must name exactly one variable")

// SimplifyGivens drops evidence that v is conditionally independent of.
// If no descendant of v is given and every parent is, only the parent
// entries are kept. Otherwise givens is returned as is. The input is never
// modified.
func SimplifyGivens(net domain.Network, v string, givens domain.Assignment) domain.Assignment {
	for _, d := range Descendants(net, v) {
		if _, ok := givens[d]; ok {
			return givens
		}
	}

	parents := net.Parents(v)
	for _, p := range parents {
		if _, ok := givens[p]; !ok {
			return givens
		}
	}
	return givens.Restrict(parents)
}

// Lookup resolves a single-variable hypothesis to a CPT entry, simplifying
// givens first when they are supplied.
func Lookup(net domain.Network, hypothesis, givens domain.Assignment) (float64, error) {
	if len(hypothesis) != 1 {
		return 0, &LookupError{Hypothesis: hypothesis, Givens: givens, Err: errNotSingleton}
	}

	query := givens
	if givens != nil {
		query = SimplifyGivens(net, hypothesis.Keys()[0], givens)
	}

	p, err := net.Probability(hypothesis, query)
	if err != nil {
		return 0, &LookupError{Hypothesis: hypothesis, Givens: givens, Err: err}
	}
	return p, nil
}

// Joint computes P(hypothesis) for a hypothesis that assigns every variable,
// by the chain rule. Variables are visited in reverse topological order so
// that the evidence for each factor is always a superset of its parents.
func Joint(net domain.Network, hypothesis domain.Assignment) (float64, error) {
	if err := checkKnown(net, hypothesis, nil); err != nil {
		return 0, err
	}

	order := net.TopologicalSort()
	slices.Reverse(order)

	factors := make([]float64, 0, len(order))
	for i, v := range order {
		value, ok := hypothesis[v]
		if !ok {
			return 0, &LookupError{
				Hypothesis: hypothesis,
				Err:        fmt.Errorf("joint hypothesis does not assign %s", v),
			}
		}
		p, err := Lookup(net, domain.Assignment{v: value}, hypothesis.Restrict(order[i+1:]))
		if err != nil {
			return 0, err
		}
		factors = append(factors, p)
	}
	return floats.Prod(factors), nil
}

// Marginal computes P(hypothesis) for a partial assignment by summing the
// joint probability of every full assignment that agrees with it.
//
// The number of joints summed is the product of the domain sizes of the
// variables hypothesis leaves free, so cost grows exponentially with them.
func Marginal(net domain.Network, hypothesis domain.Assignment) (float64, error) {
	if err := checkKnown(net, hypothesis, nil); err != nil {
		return 0, err
	}

	joints := net.Combinations(net.Variables(), hypothesis)
	probs := make([]float64, 0, len(joints))
	for _, j := range joints {
		p, err := Joint(net, j)
		if err != nil {
			return 0, err
		}
		probs = append(probs, p)
	}
	return floats.Sum(probs), nil
}

// Conditional computes P(hypothesis | givens) as a ratio of marginals. A nil
// givens means no conditioning. A variable outside the network fails with a
// *LookupError before anything else. If hypothesis and givens disagree on a
// shared variable the result is 0. Conditioning on evidence with zero
// probability fails with ErrZeroEvidence.
func Conditional(net domain.Network, hypothesis, givens domain.Assignment) (float64, error) {
	if givens == nil {
		return Marginal(net, hypothesis)
	}
	if err := checkKnown(net, hypothesis, givens); err != nil {
		return 0, err
	}
	if !domain.Consistent(hypothesis, givens) {
		return 0, nil
	}

	evidence, err := Marginal(net, givens)
	if err != nil {
		return 0, err
	}
	if evidence == 0 {
		return 0, fmt.Errorf("P(%s | %s): %w", hypothesis, givens, ErrZeroEvidence)
	}

	both, err := Marginal(net, domain.Merge(hypothesis, givens))
	if err != nil {
		return 0, err
	}
	return both / evidence, nil
}

// Probability computes any probability. Joints and marginals are the
// special cases of a conditional with total hypothesis or nil givens.
func Probability(net domain.Network, hypothesis, givens domain.Assignment) (float64, error) {
	return Conditional(net, hypothesis, givens)
}
