package errcode

// Error code convention for worker notify messages:
// - 0: no error
// - 4xxx: recoverable business errors (the flow may continue)
// - 5xxx: system errors (the flow must stop)
const (
	OK              = 0
	ResourceMissing = 4004
	SystemError     = 5000
)
