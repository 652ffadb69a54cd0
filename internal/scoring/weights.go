package scoring

// TotalWeight returns the sum of all criterion weights. Weights are percentage
// units but are not required to add up to 100; the total is the denominator
// when averaging.
func TotalWeight(criteria []Criterion) float64 {
	var sum float64
	for _, c := range criteria {
		sum += c.Weight
	}
	return sum
}

// WeightShare is one criterion's fraction of the total weight.
type WeightShare struct {
	Criterion string  `json:"criterion"`
	Weight    float64 `json:"weight"`
	Percent   float64 `json:"percent"`
}

// WeightShares returns each criterion's share of the total weight as a
// percentage rounded to one decimal. A zero total yields zero shares.
func WeightShares(criteria []Criterion) []WeightShare {
	total := TotalWeight(criteria)
	out := make([]WeightShare, 0, len(criteria))
	for _, c := range criteria {
		s := WeightShare{Criterion: c.Name, Weight: c.Weight}
		if total > 0 {
			s.Percent = Round1(c.Weight / total * 100)
		}
		out = append(out, s)
	}
	return out
}
