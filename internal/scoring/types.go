package scoring

import (
	"fmt"
	"strings"
)

// Direction says whether higher or lower raw values are preferred for a criterion.
type Direction string

const (
	Benefit Direction = "benefit"
	Cost    Direction = "cost"
)

// ParseDirection accepts "benefit"/"cost" and the report wording
// ("higher"/"lower"), case-insensitively. An empty string means cost, which is
// what a freshly added criterion defaults to.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "benefit", "higher", "higher_is_better":
		return Benefit, nil
	case "", "cost", "lower", "lower_is_better":
		return Cost, nil
	default:
		return "", fmt.Errorf("unknown direction %q", s)
	}
}

func (d Direction) IsBenefit() bool { return d == Benefit }

// Label is the human wording used in reports.
func (d Direction) Label() string {
	if d == Benefit {
		return "Higher is better"
	}
	return "Lower is better"
}

func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Criterion is a weighted dimension options are evaluated on. Name is the join
// key into Option.Values. Weight is in percentage units and does not have to
// sum to 100 across criteria.
type Criterion struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Weight    float64   `json:"weight" yaml:"weight"`
	Direction Direction `json:"direction" yaml:"direction"`
	Min       *float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64  `json:"max,omitempty" yaml:"max,omitempty"`
}

// HasRange reports whether both bounds were declared.
func (c Criterion) HasRange() bool {
	return c.Min != nil && c.Max != nil
}

// Scale resolves the criterion's range once. A criterion with only one bound
// falls back to the implicit 0-100 scale.
func (c Criterion) Scale() Scale {
	if c.HasRange() {
		return Explicit(*c.Min, *c.Max)
	}
	return ImplicitPercentage
}

// RangeLabel renders "min-max" or "N/A".
func (c Criterion) RangeLabel() string {
	if !c.HasRange() {
		return "N/A"
	}
	return fmt.Sprintf("%s-%s", formatNumber(*c.Min), formatNumber(*c.Max))
}

// Values maps criterion name to the raw value entered for an option.
type Values map[string]float64

// Get returns the raw value for name, or 0 when nothing was entered.
func (v Values) Get(name string) float64 {
	return v[name]
}

// Has reports whether a value was entered for name.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// Clone returns an independent copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

type Option struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Values Values `json:"values" yaml:"values"`
}

// Clone returns a copy whose Values map is not shared with o.
func (o Option) Clone() Option {
	o.Values = o.Values.Clone()
	return o
}

// ScoredOption is an option with its final 0-100 score attached.
type ScoredOption struct {
	Option
	Score float64 `json:"score" yaml:"score"`
}

// CloneCriteria copies a criterion slice including its range pointers.
func CloneCriteria(in []Criterion) []Criterion {
	if in == nil {
		return nil
	}
	out := make([]Criterion, len(in))
	for i, c := range in {
		if c.Min != nil {
			v := *c.Min
			c.Min = &v
		}
		if c.Max != nil {
			v := *c.Max
			c.Max = &v
		}
		out[i] = c
	}
	return out
}

// CloneOptions copies an option slice including each values map.
func CloneOptions(in []Option) []Option {
	if in == nil {
		return nil
	}
	out := make([]Option, len(in))
	for i, o := range in {
		out[i] = o.Clone()
	}
	return out
}

func formatNumber(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.4f", f), "0"), ".")
}
