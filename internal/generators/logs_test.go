package generators

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mmrzaf/synthgen/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestLogsGenerateShape(t *testing.T) {
	g := NewLogs(seeded(42))
	tbl, err := g.Generate(LogParams{Rows: 100})
	require.NoError(t, err)

	require.Equal(t, []string{"timestamp", "job_name", "status", "duration_seconds"}, tbl.Columns)
	require.Equal(t, 100, tbl.Len())

	known := map[string]bool{}
	for _, name := range allJobNames() {
		known[name] = true
	}
	statuses := map[string]bool{"SUCCESS": true, "FAILED": true, "WARNING": true, "TIMEOUT": true, "CANCELLED": true}

	for _, row := range tbl.Rows {
		require.True(t, known[row[1].(string)], "unknown job %v", row[1])
		require.True(t, statuses[row[2].(string)], "unknown status %v", row[2])

		dur := row[3].(int)
		require.GreaterOrEqual(t, dur, 10)
		require.LessOrEqual(t, dur, 300)
	}
}

func TestLogsTimestampsEvenlySpaced(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	g := NewLogs(seeded(1))
	tbl, err := g.Generate(LogParams{Rows: 11, StartDate: start, EndDate: end})
	require.NoError(t, err)

	timestamps := tbl.Column("timestamp")
	require.Equal(t, start, timestamps[0])
	require.Equal(t, end, timestamps[10])

	step := timestamps[1].(time.Time).Sub(timestamps[0].(time.Time))
	for i := 1; i < 10; i++ {
		require.Equal(t, step, timestamps[i].(time.Time).Sub(timestamps[i-1].(time.Time)))
	}
}

func TestLogsSeverityTracksStatus(t *testing.T) {
	g := NewLogs(seeded(2))
	tbl, err := g.Generate(LogParams{Rows: 500, IncludeSeverity: true})
	require.NoError(t, err)

	sevIdx := tbl.ColumnIndex("severity")
	require.GreaterOrEqual(t, sevIdx, 0)

	for _, row := range tbl.Rows {
		status := row[2].(string)
		require.Equal(t, severityByStatus[status], row[sevIdx])
	}
}

func TestLogsErrorMessageOnlyOnFailure(t *testing.T) {
	g := NewLogs(seeded(3))
	tbl, err := g.Generate(LogParams{Rows: 1000, IncludeErrorMessage: true})
	require.NoError(t, err)

	msgIdx := tbl.ColumnIndex("error_message")
	require.GreaterOrEqual(t, msgIdx, 0)

	sawMessage := false
	for _, row := range tbl.Rows {
		status := row[2].(string)
		msg := row[msgIdx]
		if failedStatuses[status] {
			require.NotNil(t, msg)
			require.Contains(t, errorMessagePool, msg.(string))
			sawMessage = true
		} else {
			require.Nil(t, msg)
		}
	}
	require.True(t, sawMessage, "expected at least one failed entry at these weights")
}

func TestLogsStatusWeightOverride(t *testing.T) {
	g := NewLogs(seeded(4))
	tbl, err := g.Generate(LogParams{
		Rows:          200,
		StatusWeights: map[string]float64{"OK": 1, "BROKEN": 0},
	})
	require.NoError(t, err)

	for _, row := range tbl.Rows {
		require.Equal(t, "OK", row[2])
	}
}

func TestLogsByCategory(t *testing.T) {
	g := NewLogs(seeded(5))
	tbl, err := g.GenerateByCategory("ETL", LogParams{Rows: 50})
	require.NoError(t, err)

	etl := map[string]bool{}
	for _, name := range jobTaxonomy["ETL"] {
		etl[name] = true
	}
	for _, row := range tbl.Rows {
		require.True(t, etl[row[1].(string)], "job %v not in ETL category", row[1])
	}

	_, err = g.GenerateByCategory("Nonsense", LogParams{Rows: 10})
	require.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestCategoriesListsTaxonomy(t *testing.T) {
	cats := Categories()
	require.Equal(t, []string{"ETL", "Data Processing", "Sync", "Export", "Finance", "Maintenance"}, cats)
}

func TestLogsGenerateStrings(t *testing.T) {
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	g := NewLogs(seeded(42))
	lines, err := g.GenerateStrings(LogStringParams{
		LogParams: LogParams{Rows: 10, StartDate: start, EndDate: end},
	})
	require.NoError(t, err)
	require.Len(t, lines, 10)

	known := map[string]bool{}
	for _, name := range allJobNames() {
		known[name] = true
	}

	for _, line := range lines {
		parts := strings.Split(line, "|")
		require.Len(t, parts, 4)

		ts, err := time.Parse("2006-01-02 15:04:05", parts[0])
		require.NoError(t, err)
		require.False(t, ts.Before(start))
		require.False(t, ts.After(end))

		require.True(t, known[parts[1]], "unknown job %s", parts[1])

		dur, err := strconv.Atoi(parts[3])
		require.NoError(t, err)
		require.GreaterOrEqual(t, dur, 10)
	}
}

func TestLogsGenerateStringsCustomFormat(t *testing.T) {
	g := NewLogs(seeded(6))
	lines, err := g.GenerateStrings(LogStringParams{
		LogParams: LogParams{Rows: 5},
		Separator: ";",
	})
	require.NoError(t, err)

	for _, line := range lines {
		require.Len(t, strings.Split(line, ";"), 4)
	}
}

func TestLogsGenerateStringsByCategory(t *testing.T) {
	g := NewLogs(seeded(8))
	lines, err := g.GenerateStringsByCategory("ETL", LogStringParams{
		LogParams: LogParams{Rows: 50},
	})
	require.NoError(t, err)
	require.Len(t, lines, 50)

	etl := map[string]bool{}
	for _, name := range jobTaxonomy["ETL"] {
		etl[name] = true
	}
	for _, line := range lines {
		parts := strings.Split(line, "|")
		require.True(t, etl[parts[1]], "job %s not in ETL category", parts[1])
	}

	_, err = g.GenerateStringsByCategory("Nonsense", LogStringParams{
		LogParams: LogParams{Rows: 10},
	})
	require.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestLogsInvalidParams(t *testing.T) {
	g := NewLogs(seeded(7))

	_, err := g.Generate(LogParams{Rows: 0})
	require.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = g.Generate(LogParams{Rows: 10, DurationMin: 100, DurationMax: 50})
	require.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = g.Generate(LogParams{
		Rows:      10,
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, domain.ErrInvalidParameter)
}
