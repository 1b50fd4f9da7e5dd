package models

import "time"

// LeadStatus captures where an inquiry sits in the admissions funnel.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"
	LeadStatusContacted LeadStatus = "CONTACTED"
	LeadStatusQualified LeadStatus = "QUALIFIED"
	LeadStatusConverted LeadStatus = "CONVERTED"
	LeadStatusClosed    LeadStatus = "CLOSED"
)

// LeadStatuses lists every status in funnel order.
var LeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusConverted,
	LeadStatusClosed,
}

// Valid reports whether the status is one of the five funnel values.
func (s LeadStatus) Valid() bool {
	for _, status := range LeadStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Lead is an inquiry captured from the public forms.
type Lead struct {
	ID          string     `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Email       string     `db:"email" json:"email"`
	Phone       *string    `db:"phone" json:"phone,omitempty"`
	Message     *string    `db:"message" json:"message,omitempty"`
	Age         *int       `db:"age" json:"age,omitempty"`
	Gender      *string    `db:"gender" json:"gender,omitempty"`
	Nationality *string    `db:"nationality" json:"nationality,omitempty"`
	Source      *string    `db:"source" json:"source,omitempty"`
	Status      LeadStatus `db:"status" json:"status"`
	Notes       string     `db:"notes" json:"notes"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`

	InterestedColleges []LeadCollege `db:"-" json:"interestedColleges"`
	InterestedCourses  []LeadCourse  `db:"-" json:"interestedCourses"`
}

// LeadCollege is the college projection loaded alongside a lead.
type LeadCollege struct {
	LeadID  string  `db:"lead_id" json:"-"`
	ID      string  `db:"id" json:"id"`
	Name    string  `db:"name" json:"name"`
	Slug    string  `db:"slug" json:"slug"`
	City    *string `db:"city" json:"city,omitempty"`
	Country *string `db:"country" json:"country,omitempty"`
}

// LeadCourse is the course projection loaded alongside a lead.
type LeadCourse struct {
	LeadID string      `db:"lead_id" json:"-"`
	ID     string      `db:"id" json:"id"`
	Name   string      `db:"name" json:"name"`
	Slug   string      `db:"slug" json:"slug"`
	Degree *string     `db:"degree" json:"degree,omitempty"`
	Level  CourseLevel `db:"level" json:"level"`
}

// LeadFilter holds the optional criteria combined into a single lead predicate.
// Zero values never narrow the result set.
type LeadFilter struct {
	Query    string
	Status   LeadStatus
	Source   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// LeadListParams extends LeadFilter with offset pagination and ordering.
type LeadListParams struct {
	LeadFilter
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
}
