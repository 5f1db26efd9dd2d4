package checkout

// Status is the orchestrator's submission state. Once Submitting, the
// in-flight steps run to completion or failure; there is no
// cancelled-while-submitting state.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

func CanTransitionTo(from, to Status) bool {
	switch from {
	case StatusIdle:
		return to == StatusSubmitting
	case StatusSubmitting:
		return to == StatusSucceeded || to == StatusFailed || to == StatusIdle
	case StatusSucceeded, StatusFailed:
		return to == StatusIdle || to == StatusSubmitting
	}
	return false
}
