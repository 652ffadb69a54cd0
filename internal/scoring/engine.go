package scoring

import (
	"sort"
	"strconv"
	"strings"
)

// Contribution captures one criterion's share of an option's score.
type Contribution struct {
	Criterion  string  `json:"criterion"`
	Raw        float64 `json:"raw"`
	Entered    bool    `json:"entered"`
	Normalized float64 `json:"normalized"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
}

// Explanation is the breakdown behind one option's score.
type Explanation struct {
	OptionID      string         `json:"option_id"`
	OptionName    string         `json:"option_name"`
	Score         float64        `json:"score"`
	Contributions []Contribution `json:"contributions"`
}

// Engine is the weighted additive scoring engine. It holds no mutable state
// and may be shared across goroutines.
type Engine struct {
	policy ClampPolicy
}

// NewEngine creates an Engine with the given clamp policy.
func NewEngine(policy ClampPolicy) *Engine {
	return &Engine{policy: policy}
}

var defaultEngine = NewEngine(Unclamped)

// ComputeScores scores options with the default, unclamped engine.
func ComputeScores(decisionName string, criteria []Criterion, options []Option) ([]ScoredOption, error) {
	return defaultEngine.ComputeScores(decisionName, criteria, options)
}

func (e *Engine) Policy() ClampPolicy { return e.policy }

// Validate checks the preconditions for scoring. It stops at the first failure.
func Validate(decisionName string, criteria []Criterion) error {
	if strings.TrimSpace(decisionName) == "" {
		return &ValidationError{Kind: ErrMissingName, Field: "decision_name"}
	}
	if len(criteria) == 0 {
		return &ValidationError{Kind: ErrInvalidWeight, Field: "criteria", Detail: "at least one criterion is required"}
	}
	for i, c := range criteria {
		if !(c.Weight > 0) {
			return NewValidationError(ErrInvalidWeight, fieldName("criteria", i, c.Name), "got %v", c.Weight)
		}
	}
	for i, c := range criteria {
		if c.HasRange() && !c.Scale().Valid() {
			return NewValidationError(ErrInvalidRange, fieldName("criteria", i, c.Name), "min %v, max %v", *c.Min, *c.Max)
		}
	}
	return nil
}

// ComputeScores validates the inputs, scores every option and returns them
// ranked by score, highest first. Options with equal scores keep their input
// order. Inputs are never modified; the returned options own copies of their
// values.
func (e *Engine) ComputeScores(decisionName string, criteria []Criterion, options []Option) ([]ScoredOption, error) {
	if err := Validate(decisionName, criteria); err != nil {
		return nil, err
	}

	total := TotalWeight(criteria)
	scales := resolveScales(criteria)

	results := make([]ScoredOption, 0, len(options))
	for _, opt := range options {
		var raw float64
		for i, c := range criteria {
			raw += e.normalize(opt.Values.Get(c.Name), c.Direction, scales[i]) * c.Weight
		}
		results = append(results, ScoredOption{
			Option: opt.Clone(),
			Score:  Round1(raw / total * 100),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

// Explain returns the per-criterion breakdown for one option. It assumes the
// criteria already passed Validate.
func (e *Engine) Explain(criteria []Criterion, opt Option) Explanation {
	total := TotalWeight(criteria)
	scales := resolveScales(criteria)

	out := Explanation{
		OptionID:      opt.ID,
		OptionName:    opt.Name,
		Contributions: make([]Contribution, 0, len(criteria)),
	}
	var raw float64
	for i, c := range criteria {
		value := opt.Values.Get(c.Name)
		norm := e.normalize(value, c.Direction, scales[i])
		weighted := norm * c.Weight
		raw += weighted
		out.Contributions = append(out.Contributions, Contribution{
			Criterion:  c.Name,
			Raw:        value,
			Entered:    opt.Values.Has(c.Name),
			Normalized: norm,
			Weight:     c.Weight,
			Weighted:   weighted,
		})
	}
	if total > 0 {
		out.Score = Round1(raw / total * 100)
	}
	return out
}

// ExplainAll explains every option in the given order.
func (e *Engine) ExplainAll(criteria []Criterion, options []Option) []Explanation {
	out := make([]Explanation, 0, len(options))
	for _, o := range options {
		out = append(out, e.Explain(criteria, o))
	}
	return out
}

func (e *Engine) normalize(raw float64, dir Direction, s Scale) float64 {
	return e.policy.apply(Normalize(raw, dir, s))
}

func resolveScales(criteria []Criterion) []Scale {
	scales := make([]Scale, len(criteria))
	for i, c := range criteria {
		scales[i] = c.Scale()
	}
	return scales
}

func fieldName(prefix string, i int, name string) string {
	if name != "" {
		return prefix + "[" + name + "]"
	}
	return prefix + "[" + strconv.Itoa(i) + "]"
}
