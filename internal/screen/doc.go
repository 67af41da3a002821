// Package screen binds user intents to effects for the list and detail
// screens.
//
// Each intent first applies a synchronous Started event to the screen's
// store and then launches an effect in the screen's Scope. The effect calls
// a collaborator, classifies the outcome and applies a terminal event. Load
// failures and launch outcomes are also emitted as one-shot notices.
//
// Effects are never cancelled when a newer intent supersedes them; the last
// outcome applied wins. Dispose cancels every outstanding effect of one
// screen and detaches its watchers.
package screen
