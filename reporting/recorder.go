package reporting

// Event is one captured warning or message
type Event struct {
	Code string
	Text string
}

// Recorder is a Reporter that captures every notification for inspection,
// mainly in tests
type Recorder struct {
	Labels    []string
	Percents  []int
	Completes int
	Warnings  []Event
	Messages  []Event
}

var _ Reporter = (*Recorder)(nil)

// ShowProgress records the stage label
func (r *Recorder) ShowProgress(label string) {
	r.Labels = append(r.Labels, label)
}

// UpdateProgress records the reported percentage
func (r *Recorder) UpdateProgress(percent int) {
	r.Percents = append(r.Percents, percent)
}

// CompleteProgress counts stage completions
func (r *Recorder) CompleteProgress() {
	r.Completes++
}

// ShowWarning records the warning
func (r *Recorder) ShowWarning(code, text string) {
	r.Warnings = append(r.Warnings, Event{Code: code, Text: text})
}

// ShowMessage records the message
func (r *Recorder) ShowMessage(code, text string) {
	r.Messages = append(r.Messages, Event{Code: code, Text: text})
}

// HasWarning reports whether a warning with the given code was recorded
func (r *Recorder) HasWarning(code string) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// HasMessage reports whether a message with the given code was recorded
func (r *Recorder) HasMessage(code string) bool {
	for _, m := range r.Messages {
		if m.Code == code {
			return true
		}
	}
	return false
}
