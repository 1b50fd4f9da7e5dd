package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/campus-admin-api/internal/models"
)

func TestBuildLeadStats(t *testing.T) {
	stats := buildLeadStats([]models.StatusCount{
		{Status: models.LeadStatusNew, Count: 5},
		{Status: models.LeadStatusContacted, Count: 2},
		{Status: models.LeadStatusConverted, Count: 3},
	})

	assert.Equal(t, 10, stats.TotalLeads)
	assert.Equal(t, 5, stats.NewLeads)
	assert.Equal(t, 0, stats.QualifiedLeads)
	assert.Equal(t, 3, stats.ConvertedLeads)
	assert.InDelta(t, 30.0, stats.ConversionRate, 0.0001)
}

func TestConversionAndGrowthRatesWithoutBaseline(t *testing.T) {
	assert.Zero(t, conversionRate(0, 0))
	assert.Zero(t, growthRate(12, 0))
	assert.InDelta(t, 50.0, growthRate(15, 10), 0.0001)
	assert.InDelta(t, -25.0, growthRate(3, 4), 0.0001)
}

func TestMergeSourceBuckets(t *testing.T) {
	got := mergeSourceBuckets([]models.SourceCount{
		{Source: "google", Count: 2},
		{Source: "", Count: 1},
		{Source: "Unknown", Count: 1},
		{Source: "facebook", Count: 2},
		{Source: "referral", Count: 5},
	})

	assert.Equal(t, []models.SourceCount{
		{Source: "referral", Count: 5},
		{Source: "Unknown", Count: 2},
		{Source: "facebook", Count: 2},
		{Source: "google", Count: 2},
	}, got)
}

func TestNonEmptyBucketsAreSorted(t *testing.T) {
	hours := nonEmptyHours([]models.HourCount{{Hour: 14, Count: 2}, {Hour: 3, Count: 0}, {Hour: 9, Count: 1}})
	assert.Equal(t, []models.HourCount{{Hour: 9, Count: 1}, {Hour: 14, Count: 2}}, hours)

	days := nonEmptyDays([]models.DayCount{{Date: "2024-03-12", Count: 1}, {Date: "2024-03-11", Count: 4}})
	assert.Equal(t, "2024-03-11", days[0].Date)
}

func TestTopInterestsCapsAtTen(t *testing.T) {
	items := make([]models.EntityInterest, 0, 12)
	for i := 0; i < 12; i++ {
		items = append(items, models.EntityInterest{ID: fmt.Sprintf("c%d", i), Count: i})
	}

	got := topInterests(items)
	assert.Len(t, got, 10)
	assert.Equal(t, "c11", got[0].ID)
	for _, item := range got {
		assert.Positive(t, item.Count)
	}
}
