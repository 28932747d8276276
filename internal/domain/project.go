package domain

// Project groups bugs under a single tracked piece of software.
// Deleting a project deletes its bugs (enforced by the store's FK cascade).
type Project struct {
	ID          int64   `json:"id" db:"id"`
	Title       string  `json:"title" db:"title"`
	Description *string `json:"description" db:"description"`
}
