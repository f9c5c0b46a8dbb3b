package selection

//go:generate stringer -type=Phase -trimprefix=Phase

// Phase is the state of the drag state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
)
