// Package action implements the Action Registry (C3): the ordered catalog
// of action objects the Step Pipeline (C4) invokes, each identified by a
// stable ActionId assigned at registration time.
package action

// Order is the phase an action runs in within one step, per spec §4.3. The
// pipeline executes strictly in this order.
type Order int

const (
	// BeginRun actions run once per run, before any step.
	BeginRun Order = iota
	// PreStep actions run once per step, before along-step propagation.
	PreStep
	// Along is the single configured along-step action (C8).
	Along
	// PrePost actions run after along-step but before the interaction
	// kernels (e.g. the discrete-select action itself).
	PrePost
	// Post actions are the interaction kernels, each filtered to the slots
	// whose post_step_action equals its own ActionId.
	Post
	// PostPost actions run after all interaction kernels (boundary
	// crossing, tracking cuts, secondary extension, track initialization).
	PostPost
	// EndRun actions run once per run, after the run completes.
	EndRun
)

func (o Order) String() string {
	switch o {
	case BeginRun:
		return "begin_run"
	case PreStep:
		return "pre_step"
	case Along:
		return "along"
	case PrePost:
		return "pre_post"
	case Post:
		return "post"
	case PostPost:
		return "post_post"
	case EndRun:
		return "end_run"
	default:
		return "unknown"
	}
}
