package decision

import (
	"strings"

	"github.com/MikeSquared-Agency/Decide/internal/scoring"
)

// ValidateForSave checks what a snapshot needs before it is written: a name
// and results from a completed scoring run, then named criteria with positive
// weights and named options. A nil results slice means no run happened; an
// empty one is a completed run over zero options.
func ValidateForSave(d Draft, results []scoring.ScoredOption) error {
	if strings.TrimSpace(d.DecisionName) == "" || results == nil {
		return &scoring.ValidationError{Kind: scoring.ErrNotScored, Detail: "complete the analysis first"}
	}
	for i, c := range d.Criteria {
		if strings.TrimSpace(c.Name) == "" {
			return scoring.NewValidationError(scoring.ErrIncompleteOption, "criteria", "criterion %d has no name", i+1)
		}
		if !(c.Weight > 0) {
			return scoring.NewValidationError(scoring.ErrInvalidWeight, "criteria["+c.Name+"]", "got %v", c.Weight)
		}
	}
	for i, o := range d.Options {
		if strings.TrimSpace(o.Name) == "" {
			return scoring.NewValidationError(scoring.ErrIncompleteOption, "options", "option %d has no name", i+1)
		}
	}
	return nil
}
