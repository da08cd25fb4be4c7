package extract

import "fmt"

// FailureKind classifies how an extraction program call failed.
type FailureKind string

const (
	FailureTimeout           FailureKind = "timeout"
	FailureProcessFailed     FailureKind = "process_failed"
	FailureEmptyOutput       FailureKind = "empty_output"
	FailureMalformedJSON     FailureKind = "malformed_json"
	FailureContractViolation FailureKind = "contract_violation"
)

// AdapterError is the typed failure returned by an extraction adapter. The
// adapter itself never mutates persistent state or notifies anyone; callers
// own all side effects.
type AdapterError struct {
	Program  string
	Kind     FailureKind
	ExitCode int
	Stderr   string
	Detail   string
}

func (e *AdapterError) Error() string {
	switch e.Kind {
	case FailureTimeout:
		return fmt.Sprintf("%s timed out after %s", e.Program, e.Detail)
	case FailureProcessFailed:
		return fmt.Sprintf("%s exited with code %d: %s", e.Program, e.ExitCode, e.Stderr)
	case FailureEmptyOutput:
		return fmt.Sprintf("%s returned empty output", e.Program)
	case FailureMalformedJSON:
		return fmt.Sprintf("%s returned invalid JSON: %s", e.Program, e.Detail)
	case FailureContractViolation:
		return fmt.Sprintf("%s output violates its contract: %s", e.Program, e.Detail)
	}
	return fmt.Sprintf("%s failed: %s", e.Program, e.Detail)
}
