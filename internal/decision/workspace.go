package decision

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Decide/internal/scoring"
)

var (
	ErrUnknownCriterion = errors.New("unknown criterion")
	ErrUnknownOption    = errors.New("unknown option")
	ErrDuplicateName    = errors.New("criterion name already in use")
	ErrUnnamedCriterion = errors.New("criterion has no name")
	ErrLastCriterion    = errors.New("at least one criterion is required")
	ErrLastOption       = errors.New("at least one option is required")
)

const (
	defaultCriterionWeight = 20
	seededOptions          = 2
	seededCriteria         = 3
)

// Draft is an immutable copy of a workspace, ready to be scored.
type Draft struct {
	DecisionName string              `json:"decisionName" yaml:"decision"`
	Criteria     []scoring.Criterion `json:"criteria" yaml:"criteria"`
	Options      []scoring.Option    `json:"options" yaml:"options"`
}

// Clone returns a deep copy of d.
func (d Draft) Clone() Draft {
	return Draft{
		DecisionName: d.DecisionName,
		Criteria:     scoring.CloneCriteria(d.Criteria),
		Options:      scoring.CloneOptions(d.Options),
	}
}

// Workspace holds a decision being edited. Criteria and options are keyed by
// ids minted from a counter that only moves forward, so a removed entity's id
// is never handed out again. Safe for concurrent use.
type Workspace struct {
	mu       sync.Mutex
	prefix   string
	seq      uint64
	name     string
	criteria []scoring.Criterion
	options  []scoring.Option
}

// NewWorkspace starts a decision with two options and three blank,
// zero-weight criteria. The blank criteria must be filled in before scoring.
func NewWorkspace(name string) *Workspace {
	w := &Workspace{
		prefix: uuid.NewString()[:8],
		name:   name,
	}
	for i := 0; i < seededOptions; i++ {
		w.options = append(w.options, scoring.Option{
			ID:     w.nextID("opt"),
			Name:   fmt.Sprintf("Option %d", i+1),
			Values: scoring.Values{},
		})
	}
	for i := 0; i < seededCriteria; i++ {
		w.criteria = append(w.criteria, scoring.Criterion{
			ID:        w.nextID("crit"),
			Direction: scoring.Cost,
		})
	}
	return w
}

// WorkspaceFromDraft loads an existing draft, replacing its ids with fresh ones.
func WorkspaceFromDraft(d Draft) *Workspace {
	w := &Workspace{
		prefix: uuid.NewString()[:8],
		name:   d.DecisionName,
	}
	for _, c := range scoring.CloneCriteria(d.Criteria) {
		c.ID = w.nextID("crit")
		w.criteria = append(w.criteria, c)
	}
	for _, o := range scoring.CloneOptions(d.Options) {
		o.ID = w.nextID("opt")
		if o.Values == nil {
			o.Values = scoring.Values{}
		}
		w.options = append(w.options, o)
	}
	return w
}

func (w *Workspace) nextID(kind string) string {
	w.seq++
	return fmt.Sprintf("%s-%s-%d", w.prefix, kind, w.seq)
}

func (w *Workspace) SetName(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.name = name
}

// AddCriterion appends a criterion and returns its id. A zero Criterion gets
// the form defaults: "Criterion N", weight 20, higher is better.
func (w *Workspace) AddCriterion(c scoring.Criterion) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if c == (scoring.Criterion{}) {
		c = scoring.Criterion{
			Name:      fmt.Sprintf("Criterion %d", len(w.criteria)+1),
			Weight:    defaultCriterionWeight,
			Direction: scoring.Benefit,
		}
	}
	if w.nameTaken(c.Name, "") {
		return "", fmt.Errorf("%w: %q", ErrDuplicateName, c.Name)
	}
	c = scoring.CloneCriteria([]scoring.Criterion{c})[0]
	c.ID = w.nextID("crit")
	w.criteria = append(w.criteria, c)
	return c.ID, nil
}

// UpdateCriterion replaces everything but the id. A rename moves every
// option's value from the old name to the new one.
func (w *Workspace) UpdateCriterion(id string, c scoring.Criterion) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.criterionIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCriterion, id)
	}
	if w.nameTaken(c.Name, id) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, c.Name)
	}

	old := w.criteria[i].Name
	c = scoring.CloneCriteria([]scoring.Criterion{c})[0]
	c.ID = id
	w.criteria[i] = c

	if old != c.Name && old != "" {
		for _, o := range w.options {
			if v, ok := o.Values[old]; ok {
				delete(o.Values, old)
				if c.Name != "" {
					o.Values[c.Name] = v
				}
			}
		}
	}
	return nil
}

// RemoveCriterion drops the criterion and the values entered for it.
func (w *Workspace) RemoveCriterion(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.criterionIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCriterion, id)
	}
	if len(w.criteria) == 1 {
		return ErrLastCriterion
	}
	name := w.criteria[i].Name
	w.criteria = append(w.criteria[:i], w.criteria[i+1:]...)
	if name != "" && !w.nameTaken(name, "") {
		for _, o := range w.options {
			delete(o.Values, name)
		}
	}
	return nil
}

// AddOption appends an option with a 0 entered for every named criterion.
// An empty name becomes "Option N".
func (w *Workspace) AddOption(name string) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if name == "" {
		name = fmt.Sprintf("Option %d", len(w.options)+1)
	}
	values := scoring.Values{}
	for _, c := range w.criteria {
		if c.Name != "" {
			values[c.Name] = 0
		}
	}
	o := scoring.Option{ID: w.nextID("opt"), Name: name, Values: values}
	w.options = append(w.options, o)
	return o.ID
}

func (w *Workspace) RenameOption(id, name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.optionIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownOption, id)
	}
	w.options[i].Name = name
	return nil
}

func (w *Workspace) RemoveOption(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.optionIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownOption, id)
	}
	if len(w.options) == 1 {
		return ErrLastOption
	}
	w.options = append(w.options[:i], w.options[i+1:]...)
	return nil
}

// SetValue records the raw value of an option on a criterion. Values are
// stored under the criterion's name, so the criterion must have one.
func (w *Workspace) SetValue(optionID, criterionID string, value float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	oi := w.optionIndex(optionID)
	if oi < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownOption, optionID)
	}
	ci := w.criterionIndex(criterionID)
	if ci < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCriterion, criterionID)
	}
	name := w.criteria[ci].Name
	if name == "" {
		return fmt.Errorf("%w: %s", ErrUnnamedCriterion, criterionID)
	}
	w.options[oi].Values[name] = value
	return nil
}

// Snapshot copies the current state. Later edits do not affect the Draft.
func (w *Workspace) Snapshot() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()

	return Draft{
		DecisionName: w.name,
		Criteria:     scoring.CloneCriteria(w.criteria),
		Options:      scoring.CloneOptions(w.options),
	}
}

// CriterionID looks up a criterion by name.
func (w *Workspace) CriterionID(name string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, c := range w.criteria {
		if c.Name == name {
			return c.ID, true
		}
	}
	return "", false
}

func (w *Workspace) criterionIndex(id string) int {
	for i, c := range w.criteria {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (w *Workspace) optionIndex(id string) int {
	for i, o := range w.options {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// nameTaken reports whether another criterion already uses name. Blank names
// never collide.
func (w *Workspace) nameTaken(name, exceptID string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	for _, c := range w.criteria {
		if c.ID != exceptID && c.Name == name {
			return true
		}
	}
	return false
}
