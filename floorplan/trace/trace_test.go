package trace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvergenceLog_WritesHeaderAndRows(t *testing.T) {
	// GIVEN a fresh log
	path := filepath.Join(t.TempDir(), "conv.csv")
	log, err := NewConvergenceLog(path)
	require.NoError(t, err)

	// WHEN two improvements are recorded
	require.NoError(t, log.Record(1500*time.Millisecond, 123.456789))
	require.NoError(t, log.Record(2*time.Second, 99.5))
	require.NoError(t, log.Close())

	// THEN the file holds the header and fixed-decimal rows
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Timestamp(s),BestCost", lines[0])
	assert.Equal(t, "1.5000,123.456789", lines[1])
	assert.Equal(t, "2.0000,99.500000", lines[2])
}

func TestConvergenceLog_FlushedPerEvent(t *testing.T) {
	// Rows must hit the disk before Close so a killed run keeps its curve.
	path := filepath.Join(t.TempDir(), "conv.csv")
	log, err := NewConvergenceLog(path)
	require.NoError(t, err)
	defer log.Close()

	require.NoError(t, log.Record(time.Second, 42))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1.0000,42.000000")
}

func TestConvergenceLog_NilReceiver_Discards(t *testing.T) {
	var log *ConvergenceLog

	assert.NoError(t, log.Record(time.Second, 1))
	assert.NoError(t, log.Close())
}

func TestAppendSummary_CreatesHeaderOnce(t *testing.T) {
	// GIVEN two runs appended to the same file
	path := filepath.Join(t.TempDir(), "summary.csv")
	rec := SummaryRecord{
		Strategy: "multistart", Threads: 8, WallSeconds: 1.25,
		BestCost: 40, ChipArea: 50, ChipWidth: 10, ChipHeight: 5, INL: 0,
		MovesTotal: 1000, MovesAccepted: 250, AcceptRatio: 0.25, SARuns: 12,
		RunID: "run-a",
	}
	require.NoError(t, AppendSummary(path, rec))
	rec.Strategy = "tempering"
	rec.RunID = "run-b"
	require.NoError(t, AppendSummary(path, rec))

	// THEN one header precedes two rows
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.TrimRight(summaryHeader, "\n"), lines[0])
	assert.Equal(t, "multistart,8,1.2500,40.000000,50.0000,10.00,5.00,0.00,1000,250,0.2500,12,run-a", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "tempering,"))
}
