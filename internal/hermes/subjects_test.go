package hermes

import (
	"strings"
	"testing"
)

func TestSubjectsFallUnderStream(t *testing.T) {
	prefix := strings.TrimSuffix(StreamSubjects, ">")
	subjects := []string{
		SubjectDecisionScored,
		SubjectDecisionSaved("d-1"),
		SubjectDecisionDeleted("d-1"),
	}
	for _, s := range subjects {
		if !strings.HasPrefix(s, prefix) {
			t.Errorf("subject %q is not captured by stream subjects %q", s, StreamSubjects)
		}
	}
}

func TestDecisionSubjects(t *testing.T) {
	if got := SubjectDecisionSaved("abc"); got != "decision.abc.saved" {
		t.Errorf("expected decision.abc.saved, got %s", got)
	}
	if got := SubjectDecisionDeleted("abc"); got != "decision.abc.deleted" {
		t.Errorf("expected decision.abc.deleted, got %s", got)
	}
}
