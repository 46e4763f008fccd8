package bootloader

// Logger is an optional logging interface for the Client. Any logger with
// Debug/Info/Error methods taking key/value pairs fits; the command-line
// tools pass a zerolog adapter.
//
// Example with the standard log package:
//
//	type StdLogger struct{}
//	func (StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	sess, err := bootloader.Open("/dev/ttyACM0", bootloader.WithLogger(StdLogger{}))
type Logger interface {
	// Debug logs per-command detail such as pages written
	Debug(msg string, keysAndValues ...interface{})

	// Info logs session milestones
	Info(msg string, keysAndValues ...interface{})

	// Error logs failed exchanges
	Error(msg string, keysAndValues ...interface{})
}
