package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector()
	b := NewCollector()

	a.DecisionsSaved.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.DecisionsSaved))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.DecisionsSaved))
}

func TestObserveHTTP(t *testing.T) {
	c := NewCollector()
	c.ObserveHTTP("GET", "/api/v1/decisions/{id}", 200, 15*time.Millisecond)
	c.ObserveHTTP("GET", "", 404, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/api/v1/decisions/{id}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestHandlerExposesDecideMetrics(t *testing.T) {
	c := NewCollector()
	c.ScoreComputations.WithLabelValues("ok").Inc()
	c.ReportsRendered.WithLabelValues("md").Inc()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.Contains(text, `decide_score_computations_total{result="ok"} 1`))
	assert.True(t, strings.Contains(text, `decide_reports_rendered_total{format="md"} 1`))
	assert.True(t, strings.Contains(text, "go_goroutines"))
}
