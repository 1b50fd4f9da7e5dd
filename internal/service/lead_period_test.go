package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/campus-admin-api/pkg/errors"
)

func ptrTime(t time.Time) *time.Time {
	return &t
}

func TestResolvePeriodCalendarWindows(t *testing.T) {
	now := time.Date(2024, 3, 14, 15, 30, 0, 0, time.UTC) // Thursday

	tests := []struct {
		period Period
		start  time.Time
		end    time.Time
	}{
		{PeriodToday, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 14, 23, 59, 59, 999999999, time.UTC)},
		{PeriodYesterday, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 13, 23, 59, 59, 999999999, time.UTC)},
		{PeriodWeek, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 17, 23, 59, 59, 999999999, time.UTC)},
		{PeriodMonth, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 23, 59, 59, 999999999, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			got, err := ResolvePeriod(tt.period, nil, nil, now, time.UTC)
			require.NoError(t, err)
			assert.True(t, tt.start.Equal(got.Start), "start %s", got.Start)
			assert.True(t, tt.end.Equal(got.End), "end %s", got.End)
		})
	}
}

func TestResolvePeriodWeekStartsMondayOnSunday(t *testing.T) {
	now := time.Date(2024, 3, 17, 9, 0, 0, 0, time.UTC) // Sunday

	got, err := ResolvePeriod(PeriodWeek, nil, nil, now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, got.Start.Weekday())
	assert.Equal(t, 11, got.Start.Day())
}

func TestResolvePeriodUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	now := time.Date(2024, 3, 14, 20, 0, 0, 0, time.UTC) // 01:30 on the 15th in IST

	got, err := ResolvePeriod(PeriodToday, nil, nil, now, loc)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Start.In(loc).Day())
	assert.Equal(t, 0, got.Start.In(loc).Hour())
}

func TestResolvePeriodCustomWidensToWholeDays(t *testing.T) {
	from := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 3, 8, 0, 0, 0, time.UTC)

	got, err := ResolvePeriod(PeriodCustom, &from, &to, time.Now(), time.UTC)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Equal(got.Start))
	assert.True(t, time.Date(2024, 2, 3, 23, 59, 59, 999999999, time.UTC).Equal(got.End))
}

func TestResolvePeriodErrors(t *testing.T) {
	now := time.Now()
	from := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := ResolvePeriod(PeriodCustom, &from, nil, now, time.UTC)
	assert.True(t, appErrors.Is(err, appErrors.ErrMissingRange))

	_, err = ResolvePeriod(PeriodCustom, &from, &to, now, time.UTC)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = ResolvePeriod("quarter", nil, nil, now, time.UTC)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidPeriod))
}

func TestSummaryWindowsLastWeekPrecedesWeek(t *testing.T) {
	now := time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)

	w := summaryWindows(now, time.UTC)
	assert.True(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC).Equal(w.LastWeek.Start))
	assert.True(t, w.LastWeek.End.Before(w.Week.Start))
	assert.Equal(t, time.Nanosecond, w.Week.Start.Sub(w.LastWeek.End))
}

func TestPeriodSingleDay(t *testing.T) {
	assert.True(t, PeriodToday.SingleDay())
	assert.True(t, PeriodYesterday.SingleDay())
	assert.False(t, PeriodWeek.SingleDay())
	assert.False(t, PeriodCustom.SingleDay())
}
