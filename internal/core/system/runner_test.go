package system

import (
	"testing"
	"time"
)

type recordingSystem struct {
	phase Phase
	name  string
	log   *[]string
}

func (s *recordingSystem) Phase() Phase { return s.phase }

func (s *recordingSystem) Update(time.Duration) {
	*s.log = append(*s.log, s.name)
}

func TestRunnerPhaseOrder(t *testing.T) {
	var log []string
	r := NewRunner()
	// Registered deliberately out of order.
	r.Register(&recordingSystem{phase: PhaseOutput, name: "output", log: &log})
	r.Register(&recordingSystem{phase: PhaseInput, name: "input", log: &log})
	r.Register(&recordingSystem{phase: PhaseCleanup, name: "cleanup", log: &log})
	r.Register(&recordingSystem{phase: PhaseUpdate, name: "update", log: &log})
	r.Register(&recordingSystem{phase: PhaseFlush, name: "flush", log: &log})

	r.Tick(time.Millisecond)

	want := []string{"input", "update", "output", "flush", "cleanup"}
	if len(log) != len(want) {
		t.Fatalf("ran %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("ran %v, want %v", log, want)
		}
	}
}

func TestRunnerStableWithinPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recordingSystem{phase: PhaseUpdate, name: "first", log: &log})
	r.Register(&recordingSystem{phase: PhaseUpdate, name: "second", log: &log})

	r.Tick(time.Millisecond)
	r.Tick(time.Millisecond)

	want := []string{"first", "second", "first", "second"}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("ran %v, want registration order preserved within a phase", log)
		}
	}
}

func TestRunnerResortsAfterLateRegister(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recordingSystem{phase: PhaseOutput, name: "output", log: &log})
	r.Tick(time.Millisecond)

	r.Register(&recordingSystem{phase: PhaseInput, name: "input", log: &log})
	log = log[:0]
	r.Tick(time.Millisecond)

	if len(log) != 2 || log[0] != "input" || log[1] != "output" {
		t.Fatalf("ran %v, want [input output] after a late registration", log)
	}
}
