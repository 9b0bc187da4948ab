package domain

// SafetyLevel is the outcome of the diff-size check.
type SafetyLevel string

const (
	// SafetySafe means the commit may proceed without confirmation.
	SafetySafe SafetyLevel = "safe"

	// SafetyWarn means the diff exceeds the threshold and needs explicit confirmation.
	SafetyWarn SafetyLevel = "warn"
)

// SafetyVerdict records a diff-size decision and the numbers behind it.
// Verdicts are recomputed for every commit and never stored.
type SafetyVerdict struct {
	Level     SafetyLevel `json:"level"`
	ByteSize  int         `json:"byte_size"`
	Threshold int         `json:"threshold"`
}

// NeedsConfirmation reports whether the verdict is a warning.
func (v SafetyVerdict) NeedsConfirmation() bool {
	return v.Level == SafetyWarn
}
