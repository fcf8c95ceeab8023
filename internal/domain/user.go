package domain

// User represents a registered account.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"` // Unique, 3-20 characters.
	PasswordHash string `json:"-"`        // Never expose this via JSON
}
