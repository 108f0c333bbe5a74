package comp

// Notifier receives non-fatal, user-visible notices about recoverable
// precondition failures, such as adding a mask to a layer that already
// has one. A GUI shows these as message dialogs.
type Notifier interface {
	Info(title, message string)
}

// logNotifier is the default Notifier: it forwards notices to the
// package logger at warn level.
type logNotifier struct{}

func (logNotifier) Info(title, message string) {
	Logger().Warn(message, "title", title)
}
