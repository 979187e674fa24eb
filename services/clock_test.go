package services

import (
	"testing"
	"time"

	"task-quest-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodStartDaily(t *testing.T) {
	got, err := PeriodStart(models.PeriodDaily, testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 7, 0, 0, 0, 0, time.UTC), got)
}

func TestPeriodStartWeekly(t *testing.T) {
	// Wednesday resolves to the previous Sunday.
	got, err := PeriodStart(models.PeriodWeekly, testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC), got)

	// A Sunday is its own week start.
	sunday := time.Date(2026, time.January, 4, 18, 30, 0, 0, time.UTC)
	got, err = PeriodStart(models.PeriodWeekly, sunday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC), got)
}

func TestPeriodStartWeeklyAcrossMonthBoundary(t *testing.T) {
	// Monday 2026-02-02 belongs to the week starting Sunday 2026-02-01.
	monday := time.Date(2026, time.February, 2, 9, 0, 0, 0, time.UTC)
	got, err := PeriodStart(models.PeriodWeekly, monday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestPeriodStartMonthly(t *testing.T) {
	got, err := PeriodStart(models.PeriodMonthly, testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestPeriodStartInvalid(t *testing.T) {
	_, err := PeriodStart(models.Period("yearly"), testNow)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
