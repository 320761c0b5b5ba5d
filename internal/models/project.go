package models

// Project availability codes stored in the projects table.
const (
	ProjectAvailable   = 1
	ProjectUnavailable = 0
)

// Project is a staff-proposed offering students can register interest in.
// StaffName is join-only: computed on read, never stored.
type Project struct {
	ID          int    `db:"project_id" json:"id"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	StaffID     int    `db:"staff_id" json:"staffId"`
	Available   int    `db:"available" json:"available"`
	StaffName   string `db:"staff_name" json:"staffName,omitempty"`
}
