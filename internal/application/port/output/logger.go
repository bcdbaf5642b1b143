package output

// Logger is the structured logging port. Implementations append one JSON
// line per event; args are alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With returns a logger that attaches the given key/value pairs to
	// every subsequent line.
	With(args ...any) Logger

	Close() error
}
