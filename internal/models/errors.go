package models

import "errors"

// Client-side validation errors, checked before any network call is issued
var (
	// ErrEmptyTitle indicates a create or rename with a blank title
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong indicates a title over the server's 200 character limit
	ErrTitleTooLong = errors.New("title is too long")

	// ErrAttachmentTooLarge indicates an upload over MaxAttachmentSize
	ErrAttachmentTooLarge = errors.New("attachment exceeds the 10MB limit")

	// ErrEmptyComment indicates a comment with no content
	ErrEmptyComment = errors.New("comment cannot be empty")
)

// MaxTitleLength matches the server-side validation on card titles
const MaxTitleLength = 200

// ValidateTitle checks a title against the client-side rules shared by
// boards, lists, and cards.
func ValidateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// Provisional reports whether an ID is a client-assigned placeholder for
// an entity the server has not confirmed yet. Server IDs are positive;
// provisional IDs are negative so they can never collide.
func Provisional(id int) bool {
	return id < 0
}
