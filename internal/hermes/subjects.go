package hermes

const (
	SubjectDecisionScored = "decision.scored"

	StreamName     = "DECISION_EVENTS"
	StreamSubjects = "decision.>"
	StreamMaxAge   = "720h" // 30 days
)

func SubjectDecisionSaved(decisionID string) string   { return "decision." + decisionID + ".saved" }
func SubjectDecisionDeleted(decisionID string) string { return "decision." + decisionID + ".deleted" }
