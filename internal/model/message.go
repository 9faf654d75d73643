package model

type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

// Warning codes attached to otherwise successful results.
const (
	CodeStaleDocument   = "STALE_DOCUMENT"
	CodeSuspiciousValue = "SUSPICIOUS_COEFFICIENT"
	CodeStatedMismatch  = "STATED_COEFFICIENT_MISMATCH"
)
