package domain

import "time"

// BugStatus represents the lifecycle state of a bug.
type BugStatus string

const (
	BugStatusOpen  BugStatus = "open"
	BugStatusClose BugStatus = "close"
)

// BugStatusValues lists every accepted status string.
var BugStatusValues = []string{string(BugStatusOpen), string(BugStatusClose)}

// Valid reports whether s is a known status.
func (s BugStatus) Valid() bool {
	for _, v := range BugStatusValues {
		if string(s) == v {
			return true
		}
	}
	return false
}

// Bug represents a defect filed against a project. A bug belongs to exactly
// one project; ProjectID never changes after creation.
type Bug struct {
	ID          int64      `json:"id" db:"id"`
	ProjectID   int64      `json:"project_id" db:"project_id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description" db:"description"`
	Priority    int        `json:"priority" db:"priority"`
	Status      BugStatus  `json:"status" db:"status"`
	StartDate   time.Time  `json:"start_date" db:"start_date"`
	DueDate     *time.Time `json:"due_date" db:"due_date"`
	EndDate     *time.Time `json:"end_date" db:"end_date"`
}
