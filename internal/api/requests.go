package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MikeSquared-Agency/Decide/internal/decision"
	"github.com/MikeSquared-Agency/Decide/internal/scoring"
)

const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

type criterionRequest struct {
	ID        string   `json:"id" validate:"max=100"`
	Name      string   `json:"name" validate:"max=200"`
	Weight    float64  `json:"weight"`
	Direction string   `json:"direction" validate:"omitempty,oneof=benefit cost higher lower"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
}

type optionRequest struct {
	ID     string             `json:"id" validate:"max=100"`
	Name   string             `json:"name" validate:"max=200"`
	Values map[string]float64 `json:"values"`
}

// draftRequest is the body of every endpoint that takes a decision. Scoring
// rules (name present, weights positive, ranges sane) are left to the engine
// so their failures carry a validation code.
type draftRequest struct {
	DecisionName string             `json:"decisionName" validate:"max=200"`
	Criteria     []criterionRequest `json:"criteria" validate:"max=50,dive"`
	Options      []optionRequest    `json:"options" validate:"max=500,dive"`
}

func (req draftRequest) draft() (decision.Draft, error) {
	d := decision.Draft{
		DecisionName: req.DecisionName,
		Criteria:     make([]scoring.Criterion, 0, len(req.Criteria)),
		Options:      make([]scoring.Option, 0, len(req.Options)),
	}
	for _, c := range req.Criteria {
		dir, err := scoring.ParseDirection(c.Direction)
		if err != nil {
			return decision.Draft{}, err
		}
		d.Criteria = append(d.Criteria, scoring.Criterion{
			ID:        c.ID,
			Name:      c.Name,
			Weight:    c.Weight,
			Direction: dir,
			Min:       c.Min,
			Max:       c.Max,
		})
	}
	for _, o := range req.Options {
		values := scoring.Values{}
		for k, v := range o.Values {
			values[k] = v
		}
		d.Options = append(d.Options, scoring.Option{ID: o.ID, Name: o.Name, Values: values})
	}
	return d, nil
}

// decodeDraft reads and validates a draftRequest. On failure it has already
// written the 400 response.
func decodeDraft(w http.ResponseWriter, r *http.Request) (decision.Draft, bool) {
	var req draftRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Code: "invalid_request"})
		return decision.Draft{}, false
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: describeValidation(err), Code: "invalid_request"})
		return decision.Draft{}, false
	}
	d, err := req.draft()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "invalid_request"})
		return decision.Draft{}, false
	}
	return d, true
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
