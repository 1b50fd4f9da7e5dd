package models

import "time"

// Specialization is a focus area within a course.
type Specialization struct {
	ID          string        `db:"id" json:"id"`
	CourseID    string        `db:"course_id" json:"courseId"`
	Name        string        `db:"name" json:"name"`
	Slug        string        `db:"slug" json:"slug"`
	Description *string       `db:"description" json:"description,omitempty"`
	Status      CatalogStatus `db:"status" json:"status"`
	Featured    bool          `db:"featured" json:"featured"`
	CreatedAt   time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updatedAt"`
}

// SpecializationDetail extends Specialization with parent course info.
type SpecializationDetail struct {
	Specialization
	CourseName       string `db:"course_name" json:"courseName"`
	ApplicationCount int    `db:"application_count" json:"applicationCount"`
}

// SpecializationFilter defines filter criteria for listing specializations.
type SpecializationFilter struct {
	Search    string
	CourseID  string
	Status    CatalogStatus
	Featured  *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
