package models

// RegistrationState is the numeric state of a registration row.
type RegistrationState int

const (
	// StateInterested marks a student's pending interest in a project.
	StateInterested RegistrationState = 1
	// StateAssigned marks a staff-approved registration. Terminal: no
	// transition leads out of it.
	StateAssigned RegistrationState = 2
)

// Description returns the display name for a registration state.
func (s RegistrationState) Description() string {
	switch s {
	case StateInterested:
		return "Interested"
	case StateAssigned:
		return "Assigned"
	default:
		return "Unknown"
	}
}

// Registration is a raw ledger row relating a student to a project.
type Registration struct {
	ID        int               `db:"registration_id" json:"registrationId"`
	ProjectID int               `db:"project_id" json:"projectId"`
	StudentID int               `db:"student_id" json:"studentId"`
	State     RegistrationState `db:"registration_state" json:"registrationState"`
}

// RegistrationDetail is the joined view served by the listing endpoints:
// ledger fields plus the student name, project title and owning staff name.
type RegistrationDetail struct {
	Registration
	StudentName  string `db:"student_name" json:"studentName"`
	ProjectTitle string `db:"project_title" json:"projectTitle"`
	StaffName    string `db:"staff_name" json:"staffName"`
}
