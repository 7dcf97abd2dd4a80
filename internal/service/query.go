package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Harshitk-cp/bayes/internal/bayesnet"
	"github.com/Harshitk-cp/bayes/internal/domain"
	"github.com/Harshitk-cp/bayes/internal/inference"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultMaxFreeVariables = 20

var (
	ErrInvalidQuery  = errors.New("invalid query")
	ErrQueryTooLarge = errors.New("query leaves too many variables free")
)

type ProbabilityKind string

const (
	KindAny         ProbabilityKind = ""
	KindJoint       ProbabilityKind = "joint"
	KindMarginal    ProbabilityKind = "marginal"
	KindConditional ProbabilityKind = "conditional"
)

func ValidProbabilityKind(k string) bool {
	switch ProbabilityKind(k) {
	case KindAny, KindJoint, KindMarginal, KindConditional:
		return true
	}
	return false
}

type ProbabilityQuery struct {
	Hypothesis domain.Assignment
	Givens     domain.Assignment
	Kind       ProbabilityKind
}

type ProbabilityResult struct {
	Probability float64           `json:"probability"`
	Kind        ProbabilityKind   `json:"kind"`
	Hypothesis  domain.Assignment `json:"hypothesis"`
	Givens      domain.Assignment `json:"givens,omitempty"`
}

type IndependenceQuery struct {
	Var1       string
	Var2       string
	Givens     domain.Assignment
	Structural bool
}

// Relations describes the position of one variable in the graph.
type Relations struct {
	Variable       string   `json:"variable"`
	Domain         []string `json:"domain"`
	Parents        []string `json:"parents"`
	Children       []string `json:"children"`
	Ancestors      []string `json:"ancestors"`
	Descendants    []string `json:"descendants"`
	NonDescendants []string `json:"non_descendants"`
}

// QueryService answers inference queries against stored networks. Each call
// loads and builds the network afresh; nothing is shared between calls.
type QueryService struct {
	networks *NetworkService
	logger   *zap.Logger

	MaxFreeVariables int
	Tolerance        float64
}

func NewQueryService(networks *NetworkService, logger *zap.Logger) *QueryService {
	return &QueryService{
		networks:         networks,
		logger:           logger,
		MaxFreeVariables: DefaultMaxFreeVariables,
		Tolerance:        inference.DefaultTolerance,
	}
}

func (s *QueryService) Probability(ctx context.Context, networkID, tenantID uuid.UUID, q ProbabilityQuery) (*ProbabilityResult, error) {
	net, err := s.networks.Load(ctx, networkID, tenantID)
	if err != nil {
		return nil, err
	}
	if len(q.Hypothesis) == 0 {
		return nil, fmt.Errorf("%w: hypothesis is required", ErrInvalidQuery)
	}
	if err := checkVariables(net, q.Hypothesis, q.Givens); err != nil {
		return nil, err
	}

	var p float64
	switch q.Kind {
	case KindJoint:
		if q.Givens != nil {
			return nil, fmt.Errorf("%w: joint queries take no givens", ErrInvalidQuery)
		}
		if len(q.Hypothesis) != len(net.Variables()) {
			return nil, fmt.Errorf("%w: joint hypothesis must assign all %d variables", ErrInvalidQuery, len(net.Variables()))
		}
		p, err = inference.Joint(net, q.Hypothesis)
	case KindMarginal:
		if q.Givens != nil {
			return nil, fmt.Errorf("%w: marginal queries take no givens", ErrInvalidQuery)
		}
		if err := s.checkFree(net, q.Hypothesis); err != nil {
			return nil, err
		}
		p, err = inference.Marginal(net, q.Hypothesis)
	case KindAny, KindConditional:
		if q.Kind == KindConditional && q.Givens == nil {
			return nil, fmt.Errorf("%w: conditional queries need givens", ErrInvalidQuery)
		}
		bound := q.Hypothesis
		if q.Givens != nil {
			bound = q.Givens
		}
		if err := s.checkFree(net, bound); err != nil {
			return nil, err
		}
		p, err = inference.Probability(net, q.Hypothesis, q.Givens)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidQuery, q.Kind)
	}
	if err != nil {
		s.logger.Warn("probability query failed",
			zap.String("network_id", networkID.String()),
			zap.Stringer("hypothesis", q.Hypothesis),
			zap.Stringer("givens", q.Givens),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Debug("probability query",
		zap.String("network_id", networkID.String()),
		zap.String("kind", string(q.Kind)),
		zap.Stringer("hypothesis", q.Hypothesis),
		zap.Stringer("givens", q.Givens),
		zap.Float64("p", p),
	)

	kind := q.Kind
	if kind == KindAny {
		kind = classify(net, q)
	}
	return &ProbabilityResult{Probability: p, Kind: kind, Hypothesis: q.Hypothesis, Givens: q.Givens}, nil
}

func (s *QueryService) Parameters(ctx context.Context, networkID, tenantID uuid.UUID) (int, error) {
	net, err := s.networks.Load(ctx, networkID, tenantID)
	if err != nil {
		return 0, err
	}
	return inference.NumberOfParameters(net), nil
}

func (s *QueryService) Independence(ctx context.Context, networkID, tenantID uuid.UUID, q IndependenceQuery) (bool, error) {
	net, err := s.networks.Load(ctx, networkID, tenantID)
	if err != nil {
		return false, err
	}
	if q.Var1 == "" || q.Var2 == "" {
		return false, fmt.Errorf("%w: var1 and var2 are required", ErrInvalidQuery)
	}
	if err := checkVariables(net, domain.Assignment{q.Var1: "", q.Var2: ""}, q.Givens); err != nil {
		return false, err
	}

	if q.Structural {
		return inference.IsStructurallyIndependent(net, q.Var1, q.Var2, q.Givens)
	}
	if err := s.checkFree(net, domain.Merge(q.Givens, domain.Assignment{q.Var1: "", q.Var2: ""})); err != nil {
		return false, err
	}

	ok, err := inference.IsIndependentWithin(net, q.Var1, q.Var2, q.Givens, s.Tolerance)
	if err != nil {
		return false, err
	}
	s.logger.Debug("independence query",
		zap.String("network_id", networkID.String()),
		zap.String("var1", q.Var1),
		zap.String("var2", q.Var2),
		zap.Stringer("givens", q.Givens),
		zap.Bool("independent", ok),
	)
	return ok, nil
}

func (s *QueryService) Relations(ctx context.Context, networkID, tenantID uuid.UUID, variable string) (*Relations, error) {
	net, err := s.networks.Load(ctx, networkID, tenantID)
	if err != nil {
		return nil, err
	}
	if !net.HasVariable(variable) {
		return nil, fmt.Errorf("%w: unknown variable %q", ErrInvalidQuery, variable)
	}
	return &Relations{
		Variable:       variable,
		Domain:         net.Domain(variable),
		Parents:        nonNil(net.Parents(variable)),
		Children:       nonNil(net.Children(variable)),
		Ancestors:      nonNil(inference.Ancestors(net, variable)),
		Descendants:    nonNil(inference.Descendants(net, variable)),
		NonDescendants: nonNil(inference.NonDescendants(net, variable)),
	}, nil
}

func (s *QueryService) SimplifyGivens(ctx context.Context, networkID, tenantID uuid.UUID, variable string, givens domain.Assignment) (domain.Assignment, error) {
	net, err := s.networks.Load(ctx, networkID, tenantID)
	if err != nil {
		return nil, err
	}
	if err := checkVariables(net, domain.Assignment{variable: ""}, givens); err != nil {
		return nil, err
	}
	return inference.SimplifyGivens(net, variable, givens), nil
}

// checkFree bounds the enumeration a marginal over bound would need.
func (s *QueryService) checkFree(net *bayesnet.Net, bound domain.Assignment) error {
	if s.MaxFreeVariables <= 0 {
		return nil
	}
	free := 0
	for _, v := range net.Variables() {
		if _, ok := bound[v]; !ok {
			free++
		}
	}
	if free > s.MaxFreeVariables {
		return fmt.Errorf("%w: %d free, limit %d", ErrQueryTooLarge, free, s.MaxFreeVariables)
	}
	return nil
}

func checkVariables(net *bayesnet.Net, assignments ...domain.Assignment) error {
	for _, a := range assignments {
		for _, v := range a.Keys() {
			if !net.HasVariable(v) {
				return fmt.Errorf("%w: unknown variable %q", ErrInvalidQuery, v)
			}
		}
	}
	return nil
}

func classify(net *bayesnet.Net, q ProbabilityQuery) ProbabilityKind {
	switch {
	case q.Givens != nil:
		return KindConditional
	case len(q.Hypothesis) == len(net.Variables()):
		return KindJoint
	default:
		return KindMarginal
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
