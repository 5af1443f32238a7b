package interfaces

// Notifier delivers a human-readable message to a phone number through
// an external gateway. Implementations may block on network I/O; callers
// that must not wait go through the notify.Dispatcher instead.
type Notifier interface {
	Notify(phoneNumber, message string) error
}
