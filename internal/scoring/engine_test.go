package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float64Ptr(v float64) *float64 { return &v }

func ranged(name string, weight float64, dir Direction, min, max float64) Criterion {
	return Criterion{ID: name, Name: name, Weight: weight, Direction: dir, Min: float64Ptr(min), Max: float64Ptr(max)}
}

func TestComputeScoresCostSpeedScenario(t *testing.T) {
	criteria := []Criterion{
		ranged("Cost", 60, Cost, 0, 100),
		ranged("Speed", 40, Benefit, 0, 100),
	}
	options := []Option{
		{ID: "b", Name: "B", Values: Values{"Cost": 80, "Speed": 20}},
		{ID: "a", Name: "A", Values: Values{"Cost": 20, "Speed": 80}},
	}

	results, err := ComputeScores("Pick a vendor", criteria, options)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "A", results[0].Name)
	assert.Equal(t, 80.0, results[0].Score)
	assert.Equal(t, "B", results[1].Name)
	assert.Equal(t, 20.0, results[1].Score)
}

func TestNormalizeBounds(t *testing.T) {
	s := Explicit(10, 50)

	if got := Normalize(10, Benefit, s); got != 0 {
		t.Errorf("benefit at min: expected 0, got %f", got)
	}
	if got := Normalize(50, Benefit, s); got != 1 {
		t.Errorf("benefit at max: expected 1, got %f", got)
	}
	if got := Normalize(10, Cost, s); got != 1 {
		t.Errorf("cost at min: expected 1, got %f", got)
	}
	if got := Normalize(50, Cost, s); got != 0 {
		t.Errorf("cost at max: expected 0, got %f", got)
	}
}

func TestNormalizeCostInvertsBenefit(t *testing.T) {
	scales := []Scale{Explicit(0, 100), Explicit(-20, 20), Explicit(3, 7), ImplicitPercentage}
	raws := []float64{-30, 0, 3.5, 5, 42, 100, 250}

	for _, s := range scales {
		for _, raw := range raws {
			b := Normalize(raw, Benefit, s)
			c := Normalize(raw, Cost, s)
			assert.InDelta(t, 1-b, c, 1e-12, "scale %+v raw %v", s, raw)
		}
	}
}

func TestNormalizeImplicitPercentage(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		dir  Direction
		want float64
	}{
		{"benefit zero", 0, Benefit, 0},
		{"benefit half", 50, Benefit, 0.5},
		{"benefit full", 100, Benefit, 1},
		{"cost zero", 0, Cost, 1},
		{"cost quarter", 25, Cost, 0.75},
		{"benefit above scale", 150, Benefit, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, tt.dir, ImplicitPercentage)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestComputeScoresSingleOptionAtBounds(t *testing.T) {
	criteria := []Criterion{ranged("Quality", 30, Benefit, 1, 5)}

	atMin, err := ComputeScores("d", criteria, []Option{{Name: "low", Values: Values{"Quality": 1}}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, atMin[0].Score)

	atMax, err := ComputeScores("d", criteria, []Option{{Name: "high", Values: Values{"Quality": 5}}})
	require.NoError(t, err)
	assert.Equal(t, 100.0, atMax[0].Score)
}

func TestComputeScoresMissingValueReadsAsZero(t *testing.T) {
	criteria := []Criterion{
		ranged("Price", 50, Cost, 0, 200),
		{ID: "s", Name: "Support", Weight: 50, Direction: Benefit},
	}
	missing := Option{Name: "missing", Values: Values{"Support": 60}}
	explicitZero := Option{Name: "zero", Values: Values{"Support": 60, "Price": 0}}

	got, err := ComputeScores("d", criteria, []Option{missing, explicitZero})
	require.NoError(t, err)
	assert.Equal(t, got[0].Score, got[1].Score)
	// Price 0 on a cost scale normalizes to 1; Support 60/100 = 0.6.
	assert.Equal(t, 80.0, got[0].Score)
}

func TestComputeScoresNilValues(t *testing.T) {
	criteria := []Criterion{{Name: "Fun", Weight: 10, Direction: Benefit}}
	got, err := ComputeScores("d", criteria, []Option{{Name: "empty"}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got[0].Score)
}

func TestComputeScoresStableTies(t *testing.T) {
	criteria := []Criterion{{Name: "x", Weight: 1, Direction: Benefit}}
	options := []Option{
		{ID: "1", Name: "first", Values: Values{"x": 40}},
		{ID: "2", Name: "top", Values: Values{"x": 90}},
		{ID: "3", Name: "second", Values: Values{"x": 40}},
		{ID: "4", Name: "third", Values: Values{"x": 40}},
	}

	got, err := ComputeScores("ties", criteria, options)
	require.NoError(t, err)

	names := make([]string, len(got))
	for i, r := range got {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"top", "first", "second", "third"}, names)
}

func TestComputeScoresIdempotent(t *testing.T) {
	criteria := []Criterion{
		ranged("Cost", 60, Cost, 0, 100),
		ranged("Speed", 40, Benefit, 0, 100),
		{Name: "Fit", Weight: 25, Direction: Benefit},
	}
	options := []Option{
		{ID: "a", Name: "A", Values: Values{"Cost": 33, "Speed": 71, "Fit": 12}},
		{ID: "b", Name: "B", Values: Values{"Cost": 48, "Speed": 15}},
		{ID: "c", Name: "C", Values: Values{"Fit": 99}},
	}

	first, err := ComputeScores("same", criteria, options)
	require.NoError(t, err)
	second, err := ComputeScores("same", criteria, options)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeScoresDoesNotMutateInputs(t *testing.T) {
	criteria := []Criterion{ranged("Cost", 60, Cost, 0, 100)}
	options := []Option{
		{ID: "b", Name: "B", Values: Values{"Cost": 80}},
		{ID: "a", Name: "A", Values: Values{"Cost": 20}},
	}

	got, err := ComputeScores("d", criteria, options)
	require.NoError(t, err)

	assert.Equal(t, "B", options[0].Name, "input order must be preserved")
	got[0].Values["Cost"] = 999
	assert.Equal(t, 20.0, options[1].Values["Cost"], "results must not share value maps with inputs")
}

func TestComputeScoresWeightsNeedNotSumTo100(t *testing.T) {
	criteria := []Criterion{
		{Name: "a", Weight: 3, Direction: Benefit},
		{Name: "b", Weight: 1, Direction: Benefit},
	}
	got, err := ComputeScores("d", criteria, []Option{{Name: "o", Values: Values{"a": 100, "b": 0}}})
	require.NoError(t, err)
	assert.Equal(t, 75.0, got[0].Score)
}

func TestComputeScoresOutOfRangeIsNotClamped(t *testing.T) {
	criteria := []Criterion{ranged("Speed", 10, Benefit, 0, 10)}

	above, err := ComputeScores("d", criteria, []Option{{Name: "fast", Values: Values{"Speed": 15}}})
	require.NoError(t, err)
	assert.Equal(t, 150.0, above[0].Score)

	below, err := ComputeScores("d", criteria, []Option{{Name: "slow", Values: Values{"Speed": -5}}})
	require.NoError(t, err)
	assert.Equal(t, -50.0, below[0].Score)
}

func TestEngineClampUnitPolicy(t *testing.T) {
	e := NewEngine(ClampUnit)
	criteria := []Criterion{ranged("Speed", 10, Benefit, 0, 10)}

	got, err := e.ComputeScores("d", criteria, []Option{
		{Name: "fast", Values: Values{"Speed": 15}},
		{Name: "slow", Values: Values{"Speed": -5}},
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, got[0].Score)
	assert.Equal(t, 0.0, got[1].Score)
	assert.Equal(t, "clamp_unit", e.Policy().String())
}

func TestComputeScoresRoundsToOneDecimal(t *testing.T) {
	criteria := []Criterion{
		{Name: "a", Weight: 1, Direction: Benefit},
		{Name: "b", Weight: 2, Direction: Benefit},
	}
	// (0.5*1 + 0.1*2) / 3 * 100 = 23.333...
	got, err := ComputeScores("d", criteria, []Option{{Name: "o", Values: Values{"a": 50, "b": 10}}})
	require.NoError(t, err)
	assert.Equal(t, 23.3, got[0].Score)
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{12.34, 12.3},
		{12.25, 12.3},
		{99.99, 100},
		{-1.25, -1.2},
		{-1.26, -1.3},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestComputeScoresValidation(t *testing.T) {
	good := []Criterion{{Name: "a", Weight: 10, Direction: Benefit}}

	tests := []struct {
		name     string
		decision string
		criteria []Criterion
		want     error
		code     string
	}{
		{"missing name", "", good, ErrMissingName, "missing_name"},
		{"blank name", "   ", good, ErrMissingName, "missing_name"},
		{"zero weight", "d", []Criterion{{Name: "a", Weight: 0}}, ErrInvalidWeight, "invalid_weight"},
		{"negative weight", "d", []Criterion{{Name: "a", Weight: 10}, {Name: "b", Weight: -1}}, ErrInvalidWeight, "invalid_weight"},
		{"nan weight", "d", []Criterion{{Name: "a", Weight: math.NaN()}}, ErrInvalidWeight, "invalid_weight"},
		{"no criteria", "d", nil, ErrInvalidWeight, "invalid_weight"},
		{"degenerate range", "d", []Criterion{ranged("a", 10, Benefit, 5, 5)}, ErrInvalidRange, "invalid_range"},
		{"inverted range", "d", []Criterion{ranged("a", 10, Benefit, 9, 1)}, ErrInvalidRange, "invalid_range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeScores(tt.decision, tt.criteria, []Option{{Name: "o"}})
			require.Error(t, err)
			assert.Nil(t, got, "no partial results on validation failure")
			assert.True(t, errors.Is(err, tt.want), "expected %v, got %v", tt.want, err)

			ve, ok := AsValidation(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, ve.Code())
		})
	}
}

func TestComputeScoresMissingNameCheckedBeforeWeights(t *testing.T) {
	_, err := ComputeScores("", []Criterion{{Name: "a", Weight: 0}}, nil)
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestComputeScoresPartialRangeUsesImplicitScale(t *testing.T) {
	c := Criterion{Name: "a", Weight: 1, Direction: Benefit, Min: float64Ptr(10)}
	assert.Equal(t, ImplicitPercentage, c.Scale())

	got, err := ComputeScores("d", []Criterion{c}, []Option{{Name: "o", Values: Values{"a": 40}}})
	require.NoError(t, err)
	assert.Equal(t, 40.0, got[0].Score)
}

func TestComputeScoresNoOptions(t *testing.T) {
	got, err := ComputeScores("d", []Criterion{{Name: "a", Weight: 1}}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExplainMatchesScore(t *testing.T) {
	e := NewEngine(Unclamped)
	criteria := []Criterion{
		ranged("Cost", 60, Cost, 0, 100),
		ranged("Speed", 40, Benefit, 0, 100),
	}
	opt := Option{ID: "a", Name: "A", Values: Values{"Cost": 20}}

	ex := e.Explain(criteria, opt)
	require.Len(t, ex.Contributions, 2)

	assert.Equal(t, "Cost", ex.Contributions[0].Criterion)
	assert.True(t, ex.Contributions[0].Entered)
	assert.InDelta(t, 0.8, ex.Contributions[0].Normalized, 1e-9)
	assert.InDelta(t, 48, ex.Contributions[0].Weighted, 1e-9)

	assert.False(t, ex.Contributions[1].Entered)
	assert.Equal(t, 0.0, ex.Contributions[1].Raw)

	scored, err := e.ComputeScores("d", criteria, []Option{opt})
	require.NoError(t, err)
	assert.Equal(t, scored[0].Score, ex.Score)
}

func TestWeightShares(t *testing.T) {
	shares := WeightShares([]Criterion{
		{Name: "a", Weight: 1},
		{Name: "b", Weight: 2},
	})
	require.Len(t, shares, 2)
	assert.Equal(t, 33.3, shares[0].Percent)
	assert.Equal(t, 66.7, shares[1].Percent)
	assert.Equal(t, 3.0, TotalWeight([]Criterion{{Weight: 1}, {Weight: 2}}))
}
