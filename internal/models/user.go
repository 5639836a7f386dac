package models

// UserRef is a lightweight reference to a user for display purposes
// (comment authors, attachment uploaders). The full account lives
// server-side.
type UserRef struct {
	ID       int
	Username string
	Email    string
}
