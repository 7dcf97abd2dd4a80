package inference

import (
	"errors"
	"fmt"

	"github.com/Harshitk-cp/bayes/internal/domain"
)

var (
	// ErrLookup matches every *LookupError.
	ErrLookup = errors.New("probability lookup failed")

	// ErrZeroEvidence is returned when conditioning on evidence whose
	// marginal probability is zero.
	ErrZeroEvidence = errors.New("evidence has zero probability")

	// ErrUnknownVariable is wrapped in a *LookupError when a query names a
	// variable the network does not have.
	ErrUnknownVariable = errors.New("unknown variable")

	// ErrNotImplemented is returned by IsStructurallyIndependent.
	ErrNotImplemented = errors.New("not implemented")
)

// LookupError reports a hypothesis/givens pair that has no CPT entry, a
// lookup hypothesis that does not name exactly one variable, or a query
// over a variable the network does not have.
type LookupError struct {
	Hypothesis domain.Assignment
	Givens     domain.Assignment
	Err        error
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("lookup P(%s", e.Hypothesis)
	if e.Givens != nil {
		msg += " | " + e.Givens.String()
	}
	msg += ")"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LookupError) Unwrap() error { return e.Err }

func (e *LookupError) Is(target error) bool { return target == ErrLookup }

// checkKnown fails with a *LookupError if hypothesis or givens name a
// variable outside the network. Network domains are never empty, so an
// empty domain marks an unknown name.
func checkKnown(net domain.Network, hypothesis, givens domain.Assignment) error {
	for _, as := range []domain.Assignment{hypothesis, givens} {
		for _, v := range as.Keys() {
			if len(net.Domain(v)) == 0 {
				return &LookupError{
					Hypothesis: hypothesis,
					Givens:     givens,
					Err:        fmt.Errorf("%w: %s", ErrUnknownVariable, v),
				}
			}
		}
	}
	return nil
}
