package domain

import "fmt"

// Binary severity labels.
const (
	SeverityLow  = "Low"
	SeverityHigh = "High"
)

// CollapseSeverity maps the 1..4 ordinal scale onto Low/High. Any other level
// fails with ErrSeverityOutOfRange instead of being guessed.
func CollapseSeverity(level int) (string, error) {
	switch level {
	case 1, 2:
		return SeverityLow, nil
	case 3, 4:
		return SeverityHigh, nil
	default:
		return "", fmt.Errorf("%w: %d", ErrSeverityOutOfRange, level)
	}
}
