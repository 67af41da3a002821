package screen

// Notice is a one-shot notification. It is never part of screen state.
// Variants: LoadFailed, LaunchSucceeded and LaunchFailed.
type Notice interface {
	Text() string
	notice()
}

// LoadFailed is emitted for every failed load or retry
type LoadFailed struct {
	Message string
}

// LaunchSucceeded is emitted when the launcher started the app
type LaunchSucceeded struct {
	ID      string
	Message string
}

// LaunchFailed is emitted for every other launch outcome
type LaunchFailed struct {
	Reason string
}

func (n LoadFailed) Text() string      { return n.Message }
func (n LaunchSucceeded) Text() string { return n.Message }
func (n LaunchFailed) Text() string    { return n.Reason }

func (LoadFailed) notice()      {}
func (LaunchSucceeded) notice() {}
func (LaunchFailed) notice()    {}
