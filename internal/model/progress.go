package model

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent is an operator-facing message emitted while scanning,
// injecting or diagnosing.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// ProgressFunc receives progress events. A nil ProgressFunc discards them.
type ProgressFunc func(ProgressEvent)

// Emit calls f with event when f is non-nil.
func (f ProgressFunc) Emit(level ProgressLevel, message string) {
	if f != nil {
		f(ProgressEvent{Message: message, Level: level})
	}
}
