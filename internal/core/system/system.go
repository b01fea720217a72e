package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput   Phase = iota // 0: adopt sessions, drain message queues
	PhaseUpdate               // 1: fixed-timestep room simulation + events
	PhaseOutput               // 2: build snapshot frames
	PhaseFlush                // 3: hand buffered frames to the writer goroutines
	PhaseCleanup              // 4: destroy empty rooms
)

// System is the interface every game-loop system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
