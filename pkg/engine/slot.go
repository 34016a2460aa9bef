// ABOUTME: Buffer slot state
// ABOUTME: Each pool slot is either free for the engine or owned by the sink
package engine

// SlotState is the ownership state of one pool buffer
type SlotState int

const (
	// Free slots belong to the engine and may be refilled
	Free SlotState = iota
	// Submitted slots belong to the sink until it reports them complete
	Submitted
)

func (s SlotState) String() string {
	switch s {
	case Free:
		return "free"
	case Submitted:
		return "submitted"
	default:
		return "unknown"
	}
}

type slot struct {
	state SlotState
	pcm   []int16
}
