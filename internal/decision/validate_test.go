package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MikeSquared-Agency/Decide/internal/scoring"
)

func validDraft() Draft {
	return Draft{
		DecisionName: "Vendor",
		Criteria: []scoring.Criterion{
			{Name: "Cost", Weight: 60, Direction: scoring.Cost, Min: ptr(0), Max: ptr(100)},
			{Name: "Speed", Weight: 40, Direction: scoring.Benefit, Min: ptr(0), Max: ptr(100)},
		},
		Options: []scoring.Option{
			{ID: "b", Name: "B", Values: scoring.Values{"Cost": 80, "Speed": 20}},
			{ID: "a", Name: "A", Values: scoring.Values{"Cost": 20, "Speed": 80}},
		},
	}
}

func TestValidateForSave(t *testing.T) {
	results := []scoring.ScoredOption{{Option: scoring.Option{Name: "A"}, Score: 80}}

	tests := []struct {
		name    string
		mutate  func(d *Draft)
		results []scoring.ScoredOption
		want    error
	}{
		{"valid", func(d *Draft) {}, results, nil},
		{"not scored", func(d *Draft) {}, nil, scoring.ErrNotScored},
		{"scored with zero options", func(d *Draft) { d.Options = nil }, []scoring.ScoredOption{}, nil},
		{"missing name", func(d *Draft) { d.DecisionName = " " }, results, scoring.ErrNotScored},
		{"unnamed criterion", func(d *Draft) { d.Criteria[1].Name = "" }, results, scoring.ErrIncompleteOption},
		{"zero weight", func(d *Draft) { d.Criteria[0].Weight = 0 }, results, scoring.ErrInvalidWeight},
		{"unnamed option", func(d *Draft) { d.Options[0].Name = "" }, results, scoring.ErrIncompleteOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			err := ValidateForSave(d, tt.results)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			_, ok := scoring.AsValidation(err)
			assert.True(t, ok)
		})
	}
}
