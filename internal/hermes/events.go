package hermes

import "time"

// DecisionScoredEvent is published for every successful score computation,
// saved or not.
type DecisionScoredEvent struct {
	DecisionName string    `json:"decision_name"`
	Criteria     int       `json:"criteria"`
	Options      int       `json:"options"`
	BestOption   string    `json:"best_option,omitempty"`
	BestScore    float64   `json:"best_score"`
	Timestamp    time.Time `json:"timestamp"`
}

type DecisionSavedEvent struct {
	DecisionID   string    `json:"decision_id"`
	DecisionName string    `json:"decision_name"`
	BestOption   string    `json:"best_option,omitempty"`
	BestScore    float64   `json:"best_score"`
	CreatedAt    time.Time `json:"created_at"`
}

type DecisionDeletedEvent struct {
	DecisionID string    `json:"decision_id"`
	Timestamp  time.Time `json:"timestamp"`
}
