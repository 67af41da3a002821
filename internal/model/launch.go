package model

// LaunchResult is the closed set of outcomes of a launch request:
// LaunchSuccess, LaunchNotSupported, LaunchNotFound and LaunchError.
type LaunchResult interface {
	launchResult()
}

// LaunchSuccess means the app's entry activity was started
type LaunchSuccess struct{}

// LaunchNotSupported means the app exposes no launcher entry point
type LaunchNotSupported struct{}

// LaunchNotFound means no app is installed under the identifier
type LaunchNotFound struct {
	ID string
}

// LaunchError carries any other launcher failure
type LaunchError struct {
	Message string
}

func (LaunchSuccess) launchResult()      {}
func (LaunchNotSupported) launchResult() {}
func (LaunchNotFound) launchResult()     {}
func (LaunchError) launchResult()        {}
