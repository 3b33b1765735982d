// internal/domain/models/project.go
package models

import "strings"

// Project statuses. The public filter also accepts StatusAll.
const (
	StatusOngoing   = "Ongoing"
	StatusCompleted = "Completed"
	StatusUpcoming  = "Upcoming"

	StatusAll = "All"
)

// ProjectStatuses lists the statuses a project can have, in display order.
var ProjectStatuses = []string{StatusOngoing, StatusCompleted, StatusUpcoming}

// ProjectFilters lists the options of the public status filter.
var ProjectFilters = []string{StatusAll, StatusOngoing, StatusCompleted, StatusUpcoming}

// Project is an initiative shown on the Projects page.
// Dates are stored as YYYY-MM-DD text.
type Project struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Status      string `db:"status"`
	StartDate   string `db:"start_date"`
	EndDate     string `db:"end_date"`
	Location    string `db:"location"`

	Images []ProjectImage `db:"-"`
}

// ProjectImage is an uploaded image attached to a project.
type ProjectImage struct {
	ID        int64  `db:"id"`
	ProjectID int64  `db:"project_id"`
	ImagePath string `db:"image_path"`
}

// NormalizeProjectStatus maps user input to a canonical status.
// It returns "" when s is not a known project status.
func NormalizeProjectStatus(s string) string {
	s = strings.TrimSpace(s)
	for _, st := range ProjectStatuses {
		if strings.EqualFold(s, st) {
			return st
		}
	}
	return ""
}

// NormalizeProjectFilter maps a filter query value to a canonical filter.
// Unknown or empty values fall back to StatusAll.
func NormalizeProjectFilter(s string) string {
	if st := NormalizeProjectStatus(s); st != "" {
		return st
	}
	return StatusAll
}
