package service

import (
	"time"

	"github.com/noah-isme/campus-admin-api/internal/models"
	appErrors "github.com/noah-isme/campus-admin-api/pkg/errors"
)

// Period names an analytics window.
type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodWeek      Period = "week"
	PeriodMonth     Period = "month"
	PeriodCustom    Period = "custom"
)

// SingleDay reports whether the period covers exactly one calendar day and is
// therefore bucketed by hour.
func (p Period) SingleDay() bool {
	return p == PeriodToday || p == PeriodYesterday
}

// ResolvePeriod maps a period tag to an inclusive [start, end] range in loc. Weeks
// start on Monday. Custom bounds are widened to whole days.
func ResolvePeriod(period Period, from, to *time.Time, now time.Time, loc *time.Location) (models.DateRange, error) {
	if loc == nil {
		loc = time.UTC
	}
	today := startOfDay(now, loc)

	switch period {
	case PeriodToday:
		return dayRange(today), nil
	case PeriodYesterday:
		return dayRange(today.AddDate(0, 0, -1)), nil
	case PeriodWeek:
		start := startOfWeek(today)
		return models.DateRange{Start: start, End: endOf(start.AddDate(0, 0, 7))}, nil
	case PeriodMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		return models.DateRange{Start: start, End: endOf(start.AddDate(0, 1, 0))}, nil
	case PeriodCustom:
		if from == nil || to == nil {
			return models.DateRange{}, appErrors.Clone(appErrors.ErrMissingRange, "")
		}
		start := startOfDay(*from, loc)
		end := endOf(startOfDay(*to, loc).AddDate(0, 0, 1))
		if start.After(end) {
			return models.DateRange{}, appErrors.Clone(appErrors.ErrValidation, "dateFrom must not be after dateTo")
		}
		return models.DateRange{Start: start, End: end}, nil
	default:
		return models.DateRange{}, appErrors.Clone(appErrors.ErrInvalidPeriod, "unknown period "+string(period))
	}
}

// summaryWindows computes the calendar windows used by the summary stats.
func summaryWindows(now time.Time, loc *time.Location) models.SummaryWindows {
	if loc == nil {
		loc = time.UTC
	}
	today := startOfDay(now, loc)
	week := startOfWeek(today)
	month := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
	return models.SummaryWindows{
		Today:     dayRange(today),
		Yesterday: dayRange(today.AddDate(0, 0, -1)),
		Week:      models.DateRange{Start: week, End: endOf(week.AddDate(0, 0, 7))},
		LastWeek:  models.DateRange{Start: week.AddDate(0, 0, -7), End: endOf(week)},
		Month:     models.DateRange{Start: month, End: endOf(month.AddDate(0, 1, 0))},
	}
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func startOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// endOf returns the last instant before next.
func endOf(next time.Time) time.Time {
	return next.Add(-time.Nanosecond)
}

func dayRange(day time.Time) models.DateRange {
	return models.DateRange{Start: day, End: endOf(day.AddDate(0, 0, 1))}
}
