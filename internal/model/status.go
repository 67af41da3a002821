package model

// ScreenStatus represents the lifecycle position of a screen's persistent state
type ScreenStatus string

const (
	// StatusIdle means nothing has been requested yet
	StatusIdle ScreenStatus = "Idle"

	// StatusLoading means a load or retry effect is in flight
	StatusLoading ScreenStatus = "Loading"

	// StatusReady means the last applied outcome carried data
	StatusReady ScreenStatus = "Ready"

	// StatusFailed means the last applied outcome was a classified error
	StatusFailed ScreenStatus = "Failed"
)

// String returns the string representation of ScreenStatus
func (s ScreenStatus) String() string {
	return string(s)
}

// IsActive returns true while an effect is expected to deliver an outcome
func (s ScreenStatus) IsActive() bool {
	return s == StatusLoading
}

// IsFinished returns true if the last effect produced a terminal outcome
func (s ScreenStatus) IsFinished() bool {
	return s == StatusReady || s == StatusFailed
}

// CanRetry reports whether a Retry intent moves the screen back to Loading
func (s ScreenStatus) CanRetry() bool {
	return s.IsFinished()
}
