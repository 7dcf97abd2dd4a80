package bayesnet

import "errors"

var (
	ErrNoEntry            = errors.New("no matching probability entry")
	ErrUnknownVariable    = errors.New("unknown variable")
	ErrUnknownValue       = errors.New("value not in variable domain")
	ErrDuplicateVariable  = errors.New("variable declared twice")
	ErrEmptyDomain        = errors.New("variable has an empty domain")
	ErrCycle              = errors.New("network contains a cycle")
	ErrIncompleteCPT      = errors.New("conditional probability table is incomplete")
	ErrNotNormalized      = errors.New("probabilities do not sum to 1")
	ErrInvalidProbability = errors.New("probability outside [0, 1]")
	ErrDuplicateEntry     = errors.New("probability entry set twice")
)
