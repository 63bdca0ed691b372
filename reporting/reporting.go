// Package reporting defines the notification sink consumed by the volume
// assembly pipeline, plus ready-made implementations for logging and tests.
package reporting

// Reporter receives progress, warning and message notifications from the
// pipeline. Calls are synchronous, fire-and-forget notifications on the
// caller's goroutine; implementations must not block indefinitely.
type Reporter interface {
	// ShowProgress announces the start of a progress-reporting stage
	ShowProgress(label string)

	// UpdateProgress reports completion of the current stage in percent (0-100)
	UpdateProgress(percent int)

	// CompleteProgress marks the current stage as finished
	CompleteProgress()

	// ShowWarning reports a non-fatal condition the user should know about
	ShowWarning(code, text string)

	// ShowMessage reports an informational note
	ShowMessage(code, text string)
}

// Null is a Reporter that discards every notification
type Null struct{}

var _ Reporter = Null{}

// ShowProgress discards the notification
func (Null) ShowProgress(label string) {}

// UpdateProgress discards the notification
func (Null) UpdateProgress(percent int) {}

// CompleteProgress discards the notification
func (Null) CompleteProgress() {}

// ShowWarning discards the notification
func (Null) ShowWarning(code, text string) {}

// ShowMessage discards the notification
func (Null) ShowMessage(code, text string) {}
