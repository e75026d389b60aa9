package hasher

// CheckStatus classifies the outcome of a single hash check.
type CheckStatus int

const (
	// StatusUnchanged means the summary hash matches the stored one.
	StatusUnchanged CheckStatus = iota
	// StatusChanged means the summary hash differs from the stored one.
	StatusChanged
	// StatusFirstRun means no previous hash existed; the current one was stored.
	StatusFirstRun
	// StatusError means authentication or fetching failed; nothing was stored.
	StatusError
)

// String returns string representation of CheckStatus
func (cs CheckStatus) String() string {
	switch cs {
	case StatusUnchanged:
		return "unchanged"
	case StatusChanged:
		return "changed"
	case StatusFirstRun:
		return "first-run"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// ExitCode maps the status onto the process exit code surface. The first-run
// code is configurable; errors use 3.
func (cs CheckStatus) ExitCode(firstRunCode int) int {
	switch cs {
	case StatusUnchanged:
		return 0
	case StatusChanged:
		return 1
	case StatusFirstRun:
		return firstRunCode
	default:
		return 3
	}
}

// CheckResult is the immutable outcome of one pipeline invocation.
type CheckResult struct {
	Status       CheckStatus
	SummaryHash  string
	PreviousHash string
	Message      string
}
