package state

// NotificationState is the one-line message surfaced in the status bar.
// Errors from rolled-back operations land here; any key press clears it.
type NotificationState struct {
	message string
	isError bool
}

func NewNotificationState() *NotificationState {
	return &NotificationState{}
}

func (n *NotificationState) Set(message string, isError bool) {
	n.message = message
	n.isError = isError
}

func (n *NotificationState) Clear() {
	n.message = ""
	n.isError = false
}

func (n *NotificationState) Message() string { return n.message }
func (n *NotificationState) IsError() bool   { return n.isError }
func (n *NotificationState) Empty() bool     { return n.message == "" }

// ConnectionState tracks the realtime channel for the status indicator
// and the reconnect backoff.
type ConnectionState struct {
	connected bool
	attempts  int
}

func NewConnectionState() *ConnectionState {
	return &ConnectionState{}
}

func (c *ConnectionState) Connected() bool { return c.connected }
func (c *ConnectionState) Attempts() int   { return c.attempts }

func (c *ConnectionState) SetConnected() {
	c.connected = true
	c.attempts = 0
}

func (c *ConnectionState) SetDisconnected() {
	c.connected = false
}

// NextAttempt bumps the retry counter and returns it
func (c *ConnectionState) NextAttempt() int {
	c.attempts++
	return c.attempts
}
