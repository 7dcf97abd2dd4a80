package inference

import (
	"testing"

	"github.com/Harshitk-cp/bayes/internal/bayesnet"
	"github.com/Harshitk-cp/bayes/internal/domain"
	"github.com/stretchr/testify/require"
)

type a = domain.Assignment

// rainNet is Rain -> Umbrella.
func rainNet(t *testing.T) *bayesnet.Net {
	t.Helper()
	net, err := bayesnet.NewBuilder("rain").
		AddVariable("Rain", "T", "F").
		AddVariable("Umbrella", "T", "F").
		SetParents("Umbrella", "Rain").
		SetProbability(a{"Rain": "T"}, nil, 0.2).
		SetProbability(a{"Rain": "F"}, nil, 0.8).
		SetProbability(a{"Umbrella": "T"}, a{"Rain": "T"}, 0.9).
		SetProbability(a{"Umbrella": "F"}, a{"Rain": "T"}, 0.1).
		SetProbability(a{"Umbrella": "T"}, a{"Rain": "F"}, 0.1).
		SetProbability(a{"Umbrella": "F"}, a{"Rain": "F"}, 0.9).
		Build()
	require.NoError(t, err)
	return net
}

// chainNet is A -> B -> C. The last value of each row is left implicit.
func chainNet(t *testing.T) *bayesnet.Net {
	t.Helper()
	net, err := bayesnet.NewBuilder("chain").
		AddVariable("A", "T", "F").
		AddVariable("B", "T", "F").
		AddVariable("C", "T", "F").
		SetParents("B", "A").
		SetParents("C", "B").
		SetProbability(a{"A": "T"}, nil, 0.3).
		SetProbability(a{"B": "T"}, a{"A": "T"}, 0.8).
		SetProbability(a{"B": "T"}, a{"A": "F"}, 0.1).
		SetProbability(a{"C": "T"}, a{"B": "T"}, 0.7).
		SetProbability(a{"C": "T"}, a{"B": "F"}, 0.2).
		Build()
	require.NoError(t, err)
	return net
}

// colliderNet is X -> Z <- Y, with Z = X or Y (noisy).
func colliderNet(t *testing.T) *bayesnet.Net {
	t.Helper()
	net, err := bayesnet.NewBuilder("collider").
		AddVariable("X", "T", "F").
		AddVariable("Y", "T", "F").
		AddVariable("Z", "T", "F").
		SetParents("Z", "X", "Y").
		SetProbability(a{"X": "T"}, nil, 0.5).
		SetProbability(a{"Y": "T"}, nil, 0.4).
		SetProbability(a{"Z": "T"}, a{"X": "T", "Y": "T"}, 0.95).
		SetProbability(a{"Z": "T"}, a{"X": "T", "Y": "F"}, 0.9).
		SetProbability(a{"Z": "T"}, a{"X": "F", "Y": "T"}, 0.8).
		SetProbability(a{"Z": "T"}, a{"X": "F", "Y": "F"}, 0.05).
		Build()
	require.NoError(t, err)
	return net
}

// diamondNet is A -> {B, C} -> D with a three-valued D.
func diamondNet(t *testing.T) *bayesnet.Net {
	t.Helper()
	b := bayesnet.NewBuilder("diamond").
		AddVariable("A", "T", "F").
		AddVariable("B", "T", "F").
		AddVariable("C", "T", "F").
		AddVariable("D", "lo", "mid", "hi").
		SetParents("B", "A").
		SetParents("C", "A").
		SetParents("D", "B", "C").
		SetProbability(a{"A": "T"}, nil, 0.6).
		SetProbability(a{"B": "T"}, a{"A": "T"}, 0.7).
		SetProbability(a{"B": "T"}, a{"A": "F"}, 0.2).
		SetProbability(a{"C": "T"}, a{"A": "T"}, 0.4).
		SetProbability(a{"C": "T"}, a{"A": "F"}, 0.5)
	for _, bv := range []string{"T", "F"} {
		for _, cv := range []string{"T", "F"} {
			b.SetProbability(a{"D": "lo"}, a{"B": bv, "C": cv}, 0.2).
				SetProbability(a{"D": "mid"}, a{"B": bv, "C": cv}, 0.3)
		}
	}
	b.SetProbability(a{"D": "hi"}, a{"B": "T", "C": "T"}, 0.5).
		SetProbability(a{"D": "hi"}, a{"B": "T", "C": "F"}, 0.5)
	net, err := b.Build()
	require.NoError(t, err)
	return net
}
