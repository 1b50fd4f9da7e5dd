package dto

import "github.com/noah-isme/campus-admin-api/internal/models"

// LeadListResponse is returned by GET /admin/leads.
type LeadListResponse struct {
	Leads      []models.Lead    `json:"leads"`
	Total      int              `json:"total"`
	HasMore    bool             `json:"hasMore"`
	Pagination OffsetPagination `json:"pagination"`
}

// OffsetPagination describes limit/offset paging for lead lists.
type OffsetPagination struct {
	Limit      int `json:"limit"`
	Offset     int `json:"offset"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

// LeadStatusUpdateResponse is returned after a status change.
type LeadStatusUpdateResponse struct {
	Success bool         `json:"success"`
	Lead    *models.Lead `json:"lead"`
}

// BulkUpdateResponse reports how many rows a bulk write touched.
type BulkUpdateResponse struct {
	Updated int `json:"updated"`
}

// LeadAnalyticsResponse is the composed analytics payload for a period.
type LeadAnalyticsResponse struct {
	Period    string           `json:"period"`
	DateRange models.DateRange `json:"dateRange"`
	Stats     LeadStats        `json:"stats"`
	Charts    LeadCharts       `json:"charts"`
	Insights  LeadInsights     `json:"insights"`
}

// LeadStats holds the count aggregations over the filtered set.
type LeadStats struct {
	TotalLeads     int     `json:"totalLeads"`
	NewLeads       int     `json:"newLeads"`
	ContactedLeads int     `json:"contactedLeads"`
	QualifiedLeads int     `json:"qualifiedLeads"`
	ConvertedLeads int     `json:"convertedLeads"`
	ClosedLeads    int     `json:"closedLeads"`
	ConversionRate float64 `json:"conversionRate"`
}

// LeadCharts holds chart-ready series. Both series are always arrays.
type LeadCharts struct {
	SourceBreakdown    []models.SourceCount `json:"sourceBreakdown"`
	HourlyDistribution []models.HourCount   `json:"hourlyDistribution"`
	DailyTrend         []models.DayCount    `json:"dailyTrend"`
}

// LeadInsights holds the ranked related entities.
type LeadInsights struct {
	TopColleges []models.EntityInterest `json:"topColleges"`
	TopCourses  []models.EntityInterest `json:"topCourses"`
}

// LeadSummaryResponse captures the dashboard headline numbers.
type LeadSummaryResponse struct {
	TotalLeads     int        `json:"totalLeads"`
	TodayLeads     int        `json:"todayLeads"`
	YesterdayLeads int        `json:"yesterdayLeads"`
	WeekLeads      int        `json:"weekLeads"`
	LastWeekLeads  int        `json:"lastWeekLeads"`
	MonthLeads     int        `json:"monthLeads"`
	NewLeads       int        `json:"newLeads"`
	ConvertedLeads int        `json:"convertedLeads"`
	ConversionRate float64    `json:"conversionRate"`
	GrowthRate     GrowthRate `json:"growthRate"`
}

// GrowthRate compares the current day and week against the previous ones, in percent.
type GrowthRate struct {
	Daily  float64 `json:"daily"`
	Weekly float64 `json:"weekly"`
}

// LeadExportRow is a flattened lead. Every field is a string so exported columns stay stable.
type LeadExportRow struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Age                string `json:"age"`
	Gender             string `json:"gender"`
	Nationality        string `json:"nationality"`
	Source             string `json:"source"`
	Status             string `json:"status"`
	Message            string `json:"message"`
	Notes              string `json:"notes"`
	InterestedColleges string `json:"interestedColleges"`
	InterestedCourses  string `json:"interestedCourses"`
	CreatedAt          string `json:"createdAt"`
	UpdatedAt          string `json:"updatedAt"`
}

// LeadExportDataResponse is returned by GET /admin/leads/export.
type LeadExportDataResponse struct {
	Data         []LeadExportRow `json:"data"`
	Filename     string          `json:"filename"`
	TotalRecords int             `json:"totalRecords"`
}
