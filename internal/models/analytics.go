package models

import "time"

// StatusCount is a per-status lead tally.
type StatusCount struct {
	Status LeadStatus `db:"status" json:"status"`
	Count  int        `db:"count" json:"count"`
}

// SourceCount is a per-source lead tally. NULL and empty sources arrive as "Unknown".
type SourceCount struct {
	Source string `db:"source" json:"source"`
	Count  int    `db:"count" json:"count"`
}

// HourCount is a lead tally for one hour of the day (0-23).
type HourCount struct {
	Hour  int `db:"hour" json:"hour"`
	Count int `db:"count" json:"count"`
}

// DayCount is a lead tally for one calendar date formatted as YYYY-MM-DD.
type DayCount struct {
	Date  string `db:"date" json:"date"`
	Count int    `db:"count" json:"count"`
}

// EntityInterest counts in-range leads interested in a college or course.
type EntityInterest struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Slug  string `db:"slug" json:"slug"`
	Count int    `db:"count" json:"count"`
}

// LeadCounts holds the raw windowed totals behind the summary stats.
type LeadCounts struct {
	Total     int `db:"total"`
	Today     int `db:"today"`
	Yesterday int `db:"yesterday"`
	Week      int `db:"week"`
	LastWeek  int `db:"last_week"`
	Month     int `db:"month"`
	New       int `db:"new"`
	Converted int `db:"converted"`
}

// SystemMetrics represents process level metrics captured from instrumentation.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	DBQueryCount             uint64    `json:"dbQueryCount"`
	AverageDBQueryDurationMs float64   `json:"averageDbQueryDurationMs"`
	ExportJobsQueued         uint64    `json:"exportJobsQueued"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}

// DateRange is an inclusive pair of instants.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SummaryWindows are the calendar windows counted for the summary stats.
type SummaryWindows struct {
	Today     DateRange
	Yesterday DateRange
	Week      DateRange
	LastWeek  DateRange
	Month     DateRange
}
