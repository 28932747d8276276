package domain

// User represents a registered account. PasswordHash is write-only: the
// json:"-" tag keeps it out of every outbound representation.
type User struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
}
