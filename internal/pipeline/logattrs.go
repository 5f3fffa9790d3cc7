package pipeline

// Log attribute keys shared by expansion events.
const (
	logKeyInput      = "input"
	logKeyOutput     = "output"
	logKeyName       = "name"
	logKeyDepth      = "depth"
	logKeyLines      = "lines"
	logKeyLevel      = "level"
	logKeyTitle      = "title"
	logKeyDurationMS = "duration_ms"
	logKeyError      = "error"
)
