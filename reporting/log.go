package reporting

import "log/slog"

// Log adapts a slog.Logger to the Reporter interface. Warnings log at Warn
// level, messages at Info, progress updates at Debug. Not safe for use from
// multiple pipeline invocations at once; give each invocation its own Log.
type Log struct {
	logger *slog.Logger
	label  string
}

var _ Reporter = (*Log)(nil)

// NewLog creates a Log reporter backed by the given logger. A nil logger
// uses slog.Default().
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

// ShowProgress logs the stage label and remembers it for later updates
func (l *Log) ShowProgress(label string) {
	l.label = label
	l.logger.Info(label)
}

// UpdateProgress logs the current stage percentage at Debug level
func (l *Log) UpdateProgress(percent int) {
	l.logger.Debug("progress", "stage", l.label, "percent", percent)
}

// CompleteProgress logs the end of the current stage at Debug level
func (l *Log) CompleteProgress() {
	l.logger.Debug("progress complete", "stage", l.label)
}

// ShowWarning logs a warning with its stable code
func (l *Log) ShowWarning(code, text string) {
	l.logger.Warn(text, "code", code)
}

// ShowMessage logs an informational message with its stable code
func (l *Log) ShowMessage(code, text string) {
	l.logger.Info(text, "code", code)
}
