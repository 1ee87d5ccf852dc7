package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/docdraft/internal/model"
)

func TestFormatRunsList(t *testing.T) {
	now := time.Date(2025, 8, 15, 10, 30, 0, 0, time.UTC)
	runs := []model.Run{
		{
			ID:        "abc12345-6789-0000-0000-000000000000",
			Kind:      model.KindFinance,
			Mode:      model.ModeRuleBased,
			Status:    model.RunStatusComplete,
			Input:     "data/gl.csv",
			CreatedAt: now,
		},
		{
			ID:        "def12345-6789-0000-0000-000000000000",
			Kind:      model.KindPolicy,
			Mode:      model.ModeService,
			Status:    model.RunStatusFailed,
			Input:     "How many vacation days do employees accrue each month?",
			CreatedAt: now.Add(-time.Hour),
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	output := buf.String()
	assert.Contains(t, output, "KIND")
	assert.Contains(t, output, "abc12345")
	assert.NotContains(t, output, "abc12345-6789")
	assert.Contains(t, output, "finance_report")
	assert.Contains(t, output, "rule_based")
	assert.Contains(t, output, "failed")
	assert.Contains(t, output, "How many vacation days do employees a...")
	assert.Contains(t, output, "2025-08-15 10:30")
}

func TestRunsStats(t *testing.T) {
	runs := []model.Run{
		{Kind: model.KindFinance, Mode: model.ModeRuleBased, Status: model.RunStatusComplete},
		{Kind: model.KindPolicy, Mode: model.ModeRuleBased, Status: model.RunStatusComplete},
		{Kind: model.KindPolicy, Mode: model.ModeService, Status: model.RunStatusFailed},
	}

	s := computeRunStats(runs)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Complete)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 2, s.ByKind[model.KindPolicy])
	assert.Equal(t, 1, s.ByMode[model.ModeService])

	var buf bytes.Buffer
	formatRunStats(&buf, s)
	output := buf.String()
	assert.Contains(t, output, "Total runs:")
	assert.Contains(t, output, "policy_answer:")
	assert.Contains(t, output, "rule_based:")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abc12345", truncateID("abc12345-6789"))
	assert.Equal(t, "short", truncateID("short"))
}
