package cli

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully
	ExitSuccess = 0

	// ExitError indicates a general error: network failures, server
	// errors, or anything that doesn't fit a category below
	ExitError = 1

	// ExitUsage indicates incorrect command usage: missing required
	// flags or arguments that need to be different
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found:
	// board, list, card, or label
	ExitNotFound = 3

	// ExitValidation indicates input failed validation: empty titles,
	// oversized attachments, malformed dates
	ExitValidation = 5

	// ExitAuth indicates a missing or rejected session; log in first
	ExitAuth = 6
)
