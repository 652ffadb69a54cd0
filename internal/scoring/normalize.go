package scoring

import "math"

// ScaleKind distinguishes a declared min/max range from the implicit 0-100 scale.
type ScaleKind int

const (
	ScaleImplicitPercentage ScaleKind = iota
	ScaleExplicit
)

// Scale is a criterion range resolved before normalization.
type Scale struct {
	Kind ScaleKind
	Min  float64
	Max  float64
}

// ImplicitPercentage is the scale used when a criterion declares no range.
var ImplicitPercentage = Scale{Kind: ScaleImplicitPercentage, Min: 0, Max: 100}

// Explicit builds a declared scale.
func Explicit(min, max float64) Scale {
	return Scale{Kind: ScaleExplicit, Min: min, Max: max}
}

// Valid reports whether the scale can be divided by.
func (s Scale) Valid() bool {
	return s.Max > s.Min
}

// Position maps raw onto the scale: 0 at Min, 1 at Max. Values outside the
// scale land outside [0,1].
func (s Scale) Position(raw float64) float64 {
	if s.Kind == ScaleImplicitPercentage {
		return raw / 100
	}
	return (raw - s.Min) / (s.Max - s.Min)
}

// Normalize maps a raw value onto the unit scale for the given direction.
// The result is not clamped: a raw value outside the scale yields a value
// outside [0,1], and the final score moves past 0 or 100 accordingly.
func Normalize(raw float64, dir Direction, s Scale) float64 {
	pos := s.Position(raw)
	if dir == Benefit {
		return pos
	}
	return 1 - pos
}

// ClampPolicy decides what happens to normalized values outside [0,1].
type ClampPolicy int

const (
	// Unclamped keeps out-of-range values as they are. Changing this changes
	// reported scores, so it is the default.
	Unclamped ClampPolicy = iota
	// ClampUnit pins normalized values to [0,1].
	ClampUnit
)

func (p ClampPolicy) apply(v float64) float64 {
	if p == ClampUnit {
		return clamp(v, 0, 1)
	}
	return v
}

func (p ClampPolicy) String() string {
	if p == ClampUnit {
		return "clamp_unit"
	}
	return "unclamped"
}

// Round1 rounds to one decimal place, halves going up.
func Round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
