package models

import "time"

// Attachment is a file owned by a card. FileURL is an opaque storage
// reference - downloads go through the API, never this URL directly.
type Attachment struct {
	ID         int
	CardID     int
	Filename   string
	FileSize   int64
	FileType   string
	FileURL    string
	UploadedBy UserRef
	CreatedAt  time.Time
}

// MaxAttachmentSize is the client-enforced upload ceiling (10MB).
// Oversized files are rejected before any network call is issued.
const MaxAttachmentSize = 10 << 20
