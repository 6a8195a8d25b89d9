package domain

// Email is an outgoing notification message.
type Email struct {
	To      string
	Subject string
	Body    string
}
