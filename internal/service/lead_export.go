package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/campus-admin-api/internal/dto"
	"github.com/noah-isme/campus-admin-api/internal/models"
	"github.com/noah-isme/campus-admin-api/pkg/export"
)

var leadExportHeaders = []string{
	"ID", "Name", "Email", "Phone", "Age", "Gender", "Nationality", "Source", "Status",
	"Message", "Notes", "Interested Colleges", "Interested Courses", "Created At", "Updated At",
}

// ProjectLeadRow flattens a lead and its interests into a row of strings. Absent
// values become empty strings.
func ProjectLeadRow(lead models.Lead) dto.LeadExportRow {
	colleges := make([]string, 0, len(lead.InterestedColleges))
	for _, c := range lead.InterestedColleges {
		colleges = append(colleges, fmt.Sprintf("%s, %s, %s", c.Name, str(c.City), str(c.Country)))
	}
	courses := make([]string, 0, len(lead.InterestedCourses))
	for _, c := range lead.InterestedCourses {
		courses = append(courses, fmt.Sprintf("%s (%s, %s)", c.Name, str(c.Degree), string(c.Level)))
	}

	age := ""
	if lead.Age != nil {
		age = strconv.Itoa(*lead.Age)
	}

	return dto.LeadExportRow{
		ID:                 lead.ID,
		Name:               lead.Name,
		Email:              lead.Email,
		Phone:              str(lead.Phone),
		Age:                age,
		Gender:             str(lead.Gender),
		Nationality:        str(lead.Nationality),
		Source:             str(lead.Source),
		Status:             string(lead.Status),
		Message:            str(lead.Message),
		Notes:              lead.Notes,
		InterestedColleges: strings.Join(colleges, "; "),
		InterestedCourses:  strings.Join(courses, "; "),
		CreatedAt:          formatTimestamp(lead.CreatedAt),
		UpdatedAt:          formatTimestamp(lead.UpdatedAt),
	}
}

// leadDataset converts projected rows into the tabular export shape.
func leadDataset(rows []dto.LeadExportRow) export.Dataset {
	data := export.Dataset{Headers: leadExportHeaders, Rows: make([]map[string]string, 0, len(rows))}
	for _, r := range rows {
		data.Rows = append(data.Rows, map[string]string{
			"ID":                  r.ID,
			"Name":                r.Name,
			"Email":               r.Email,
			"Phone":               r.Phone,
			"Age":                 r.Age,
			"Gender":              r.Gender,
			"Nationality":         r.Nationality,
			"Source":              r.Source,
			"Status":              r.Status,
			"Message":             r.Message,
			"Notes":               r.Notes,
			"Interested Colleges": r.InterestedColleges,
			"Interested Courses":  r.InterestedCourses,
			"Created At":          r.CreatedAt,
			"Updated At":          r.UpdatedAt,
		})
	}
	return data
}

// exportFilename builds leads-export-YYYY-MM-DD.<format>.
func exportFilename(format models.ExportFormat, now time.Time) string {
	return fmt.Sprintf("leads-export-%s.%s", now.Format("2006-01-02"), format)
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
