package models

// ValidationStatus is the terminal verdict of a verification run.
// IDLE exists for callers that track pre-submission state; the pipeline
// itself never returns it.
type ValidationStatus string

const (
	StatusIdle       ValidationStatus = "IDLE"
	StatusValidating ValidationStatus = "VALIDATING"
	StatusValid      ValidationStatus = "VALID"
	StatusWarning    ValidationStatus = "WARNING"
	StatusInvalid    ValidationStatus = "INVALID"
)

// VerificationResult is the full outcome of verifying a single email
// address. It is built up by the pipeline and returned to the caller as-is;
// nothing mutates it afterwards and nothing persists it.
type VerificationResult struct {
	Email       string           `json:"email"`
	User        string           `json:"user"`
	Domain      string           `json:"domain"`
	FormatValid bool             `json:"formatValid"`
	MxFound     bool             `json:"mxFound"`
	MxRecords   []string         `json:"mxRecords"`
	Disposable  bool             `json:"disposable"`
	RoleAccount bool             `json:"roleAccount"`
	DidYouMean  string           `json:"didYouMean,omitempty"`
	Score       int              `json:"score"`
	AiAnalysis  string           `json:"aiAnalysis,omitempty"`
	Status      ValidationStatus `json:"status"`
}

// StatusForScore maps a final trust score to its verdict.
// Early-exit paths (format, disposable) set INVALID directly and never
// consult this.
func StatusForScore(score int) ValidationStatus {
	switch {
	case score >= 80:
		return StatusValid
	case score >= 50:
		return StatusWarning
	default:
		return StatusInvalid
	}
}
