package service

import (
	"sort"

	"github.com/noah-isme/campus-admin-api/internal/dto"
	"github.com/noah-isme/campus-admin-api/internal/models"
)

const (
	unknownSource = "Unknown"
	topEntities   = 10
)

// buildLeadStats folds per-status counts into the stats block.
func buildLeadStats(counts []models.StatusCount) dto.LeadStats {
	var stats dto.LeadStats
	for _, c := range counts {
		stats.TotalLeads += c.Count
		switch c.Status {
		case models.LeadStatusNew:
			stats.NewLeads += c.Count
		case models.LeadStatusContacted:
			stats.ContactedLeads += c.Count
		case models.LeadStatusQualified:
			stats.QualifiedLeads += c.Count
		case models.LeadStatusConverted:
			stats.ConvertedLeads += c.Count
		case models.LeadStatusClosed:
			stats.ClosedLeads += c.Count
		}
	}
	stats.ConversionRate = conversionRate(stats.ConvertedLeads, stats.TotalLeads)
	return stats
}

// conversionRate is converted/total*100, or 0 when there are no leads.
func conversionRate(converted, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(converted) / float64(total) * 100
}

// growthRate is the percentage change from previous to current, or 0 without a baseline.
func growthRate(current, previous int) float64 {
	if previous == 0 {
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

// mergeSourceBuckets folds blank names into "Unknown", merges duplicates and
// sorts by count descending then name ascending.
func mergeSourceBuckets(counts []models.SourceCount) []models.SourceCount {
	merged := make(map[string]int, len(counts))
	for _, c := range counts {
		name := c.Source
		if name == "" {
			name = unknownSource
		}
		merged[name] += c.Count
	}
	out := make([]models.SourceCount, 0, len(merged))
	for name, count := range merged {
		out = append(out, models.SourceCount{Source: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Source < out[j].Source
	})
	return out
}

// nonEmptyHours drops empty buckets and orders by hour.
func nonEmptyHours(counts []models.HourCount) []models.HourCount {
	out := make([]models.HourCount, 0, len(counts))
	for _, c := range counts {
		if c.Count > 0 && c.Hour >= 0 && c.Hour < 24 {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

// nonEmptyDays drops empty buckets and orders by date.
func nonEmptyDays(counts []models.DayCount) []models.DayCount {
	out := make([]models.DayCount, 0, len(counts))
	for _, c := range counts {
		if c.Count > 0 {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// topInterests keeps entities with at least one lead, ranked by count, capped at ten.
func topInterests(items []models.EntityInterest) []models.EntityInterest {
	out := make([]models.EntityInterest, 0, len(items))
	for _, item := range items {
		if item.Count > 0 {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > topEntities {
		out = out[:topEntities]
	}
	return out
}
