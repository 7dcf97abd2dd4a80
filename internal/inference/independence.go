package inference

import (
	"errors"

	"github.com/Harshitk-cp/bayes/internal/domain"
	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultTolerance is the absolute difference under which two probabilities
// are treated as equal by IsIndependent.
const DefaultTolerance = 1e-10

// NumberOfParameters returns the minimum number of free parameters needed to
// specify every CPT in the network. Each parent assignment contributes one
// categorical distribution with one fewer parameter than its cardinality.
func NumberOfParameters(net domain.Network) int {
	total := 0
	for _, v := range net.Variables() {
		rows := 1
		for _, p := range net.Parents(v) {
			rows *= len(net.Domain(p))
		}
		total += rows * (len(net.Domain(v)) - 1)
	}
	return total
}

// IsIndependent reports whether var1 and var2 are conditionally independent
// given givens (nil for none), using DefaultTolerance.
func IsIndependent(net domain.Network, var1, var2 string, givens domain.Assignment) (bool, error) {
	return IsIndependentWithin(net, var1, var2, givens, DefaultTolerance)
}

// IsIndependentWithin tests independence numerically: for every value pair
// it compares P(var1=v1 | givens) with P(var1=v1 | givens, var2=v2) and
// stops at the first pair that differs by more than tol. Pairs whose extended
// evidence has zero probability leave the conditional undefined and are
// skipped.
func IsIndependentWithin(net domain.Network, var1, var2 string, givens domain.Assignment, tol float64) (bool, error) {
	if err := checkKnown(net, domain.Assignment{var1: "", var2: ""}, givens); err != nil {
		return false, err
	}

	for _, v1 := range net.Domain(var1) {
		h := domain.Assignment{var1: v1}
		base, err := Probability(net, h, givens)
		if err != nil {
			return false, err
		}

		for _, v2 := range net.Domain(var2) {
			extended := domain.Merge(givens, domain.Assignment{var2: v2})
			p, err := Probability(net, h, extended)
			if errors.Is(err, ErrZeroEvidence) {
				continue
			}
			if err != nil {
				return false, err
			}
			if !scalar.EqualWithinAbs(base, p, tol) {
				return false, nil
			}
		}
	}
	return true, nil
}

// IsStructurallyIndependent would decide independence from graph structure
// alone (d-separation). It is not supported.
func IsStructurallyIndependent(net domain.Network, var1, var2 string, givens domain.Assignment) (bool, error) {
	return false, ErrNotImplemented
}
