package inference

import (
	"testing"

	"github.com/Harshitk-cp/bayes/internal/bayesnet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberOfParameters(t *testing.T) {
	assert.Equal(t, 3, NumberOfParameters(rainNet(t)))
	assert.Equal(t, 5, NumberOfParameters(chainNet(t)))
	// X:1, Y:1, Z: 4 rows * 1
	assert.Equal(t, 6, NumberOfParameters(colliderNet(t)))
	// A:1, B:2, C:2, D: 4 rows * 2
	assert.Equal(t, 13, NumberOfParameters(diamondNet(t)))
}

func TestNumberOfParameters_AllRoots(t *testing.T) {
	const n, k = 4, 3
	b := bayesnet.NewBuilder("roots")
	for _, name := range []string{"P", "Q", "R", "S"} {
		b.AddVariable(name, "x", "y", "z").
			SetProbability(a{name: "x"}, nil, 0.2).
			SetProbability(a{name: "y"}, nil, 0.3)
	}
	net, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, n*(k-1), NumberOfParameters(net))
}

func TestIsIndependent(t *testing.T) {
	chain := chainNet(t)
	collider := colliderNet(t)
	rain := rainNet(t)

	tests := []struct {
		name   string
		net    *bayesnet.Net
		v1, v2 string
		givens a
		want   bool
	}{
		{"chain ends unconditionally", chain, "A", "C", nil, false},
		{"chain ends given middle", chain, "A", "C", a{"B": "T"}, true},
		{"chain ends given middle false", chain, "C", "A", a{"B": "F"}, true},
		{"collider parents unconditionally", collider, "X", "Y", nil, true},
		{"collider parents given child", collider, "X", "Y", a{"Z": "T"}, false},
		{"direct edge", rain, "Rain", "Umbrella", nil, false},
		{"direct edge reversed", rain, "Umbrella", "Rain", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsIndependent(tt.net, tt.v1, tt.v2, tt.givens)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsIndependentWithin_Tolerance(t *testing.T) {
	chain := chainNet(t)

	// P(A=T) = 0.3 and P(A=T | C=T) ~ 0.507, so a loose enough tolerance
	// hides the dependence.
	got, err := IsIndependentWithin(chain, "A", "C", nil, 0.5)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = IsIndependentWithin(chain, "A", "C", nil, 0.01)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestIsIndependent_LookupFailure(t *testing.T) {
	_, err := IsIndependent(rainNet(t), "Rain", "Umbrella", a{"Umbrella": "maybe"})
	assert.ErrorIs(t, err, ErrLookup)
}

func TestIsIndependent_UnknownVariable(t *testing.T) {
	net := rainNet(t)

	for _, tt := range []struct {
		name       string
		var1, var2 string
		givens     a
	}{
		{"first", "Nope", "Rain", nil},
		{"second", "Rain", "Nope", nil},
		{"both", "Snow", "Hail", nil},
		{"given", "Rain", "Umbrella", a{"Snow": "T"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := IsIndependent(net, tt.var1, tt.var2, tt.givens)
			assert.ErrorIs(t, err, ErrLookup)
			assert.ErrorIs(t, err, ErrUnknownVariable)
			assert.False(t, ok)
		})
	}
}

func TestIsStructurallyIndependent(t *testing.T) {
	_, err := IsStructurallyIndependent(chainNet(t), "A", "C", nil)
	assert.ErrorIs(t, err, ErrNotImplemented)
}
