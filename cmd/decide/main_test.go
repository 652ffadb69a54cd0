package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Decide/internal/config"
	"github.com/MikeSquared-Agency/Decide/internal/scoring"
	"github.com/MikeSquared-Agency/Decide/internal/store"
)

const sampleYAML = `
decision: Pick a vendor
criteria:
  - name: Cost
    weight: 60
    direction: cost
    min: 0
    max: 100
  - name: Speed
    weight: 40
    direction: higher
options:
  - name: A
    values:
      Cost: 80
      Speed: 90
  - name: B
    values:
      Cost: 20
      Speed: 50
`

func writeDecision(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decision.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDraft(t *testing.T) {
	d, err := loadDraft(writeDecision(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "Pick a vendor", d.DecisionName)
	require.Len(t, d.Criteria, 2)
	assert.Equal(t, scoring.Cost, d.Criteria[0].Direction)
	assert.Equal(t, scoring.Benefit, d.Criteria[1].Direction)
	assert.True(t, d.Criteria[0].HasRange())
	assert.False(t, d.Criteria[1].HasRange())
	require.Len(t, d.Options, 2)
	assert.Equal(t, 20.0, d.Options[1].Values.Get("Cost"))

	// ids are assigned on load
	assert.NotEmpty(t, d.Criteria[0].ID)
	assert.NotEqual(t, d.Options[0].ID, d.Options[1].ID)
}

func TestLoadDraftErrors(t *testing.T) {
	_, err := loadDraft(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = loadDraft(writeDecision(t, "criteria:\n  - name: X\n    direction: sideways\n"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)

	buf.Reset()
	logger = newLogger(config.LoggingConfig{Level: "bogus", Format: "text"}, &buf)
	logger.Info("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}

func TestClampPolicy(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, scoring.Unclamped, clampPolicy(cfg))
	cfg.Scoring.ClampOutOfRange = true
	assert.Equal(t, scoring.ClampUnit, clampPolicy(cfg))
}

func TestPrintRanking(t *testing.T) {
	var buf bytes.Buffer
	err := printRanking(&buf, []scoring.ScoredOption{
		{Option: scoring.Option{Name: "B"}, Score: 68},
		{Option: scoring.Option{Name: "A"}, Score: 48},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"RANK", "OPTION", "SCORE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "B", "68.0"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2", "A", "48.0"}, strings.Fields(lines[2]))
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	err := printHistory(&buf, []*store.Decision{
		{
			ID:           "d-1",
			DecisionName: "Vendor",
			Results:      []scoring.ScoredOption{{Option: scoring.Option{Name: "B"}, Score: 68}},
			CreatedAt:    store.NewTimestamp(time.Now()),
		},
		{ID: "d-2", DecisionName: "Empty", CreatedAt: store.NewTimestamp(time.Now())},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "d-1")
	assert.Contains(t, out, "68.0")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[2], "-")
}

func TestScoreCommand(t *testing.T) {
	t.Setenv("DECIDE_DATABASE_DRIVER", "memory")
	t.Setenv("DECIDE_HERMES_URL", "")
	t.Setenv("DECIDE_OTLP_ENDPOINT", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"score", "-f", writeDecision(t, sampleYAML), "--save"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		scoreFile, scoreSave, scoreJSON, scoreExplain = "", false, false, false
	})

	require.NoError(t, rootCmd.Execute())

	got := out.String()
	assert.Contains(t, got, "Pick a vendor")
	assert.Contains(t, got, "Saved as ")
	lines := strings.Split(got, "\n")
	var ranks [][]string
	for _, l := range lines {
		f := strings.Fields(l)
		if len(f) == 3 && (f[0] == "1" || f[0] == "2") {
			ranks = append(ranks, f)
		}
	}
	require.Len(t, ranks, 2)
	assert.Equal(t, "B", ranks[0][1])
	assert.Equal(t, "68.0", ranks[0][2])
	assert.Equal(t, "A", ranks[1][1])
	assert.Equal(t, "48.0", ranks[1][2])
}

func TestNewAppMemoryStore(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: "memory"},
		Tracing:  config.TracingConfig{ServiceName: "decide"},
	}
	ctx := context.Background()
	a, err := newApp(ctx, cfg, newLogger(config.LoggingConfig{Level: "error"}, &bytes.Buffer{}))
	require.NoError(t, err)
	defer a.Close(ctx)

	assert.Nil(t, a.events)
	assert.False(t, a.tracing.Enabled())

	list, err := a.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
