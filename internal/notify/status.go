package notify

// Severity of a status message.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityError
)

// Status is the payload shown on the frontend's status line.
type Status struct {
	Severity Severity
	Text     string
}

// Info is shorthand for an informational status.
func Info(text string) Status { return Status{Severity: SeverityInfo, Text: text} }

// Warn is shorthand for a warning status.
func Warn(text string) Status { return Status{Severity: SeverityWarn, Text: text} }

// Error is shorthand for an error status.
func Error(text string) Status { return Status{Severity: SeverityError, Text: text} }
