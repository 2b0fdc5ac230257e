package system

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrRunnerStarted is returned by Register once the first frame ran.
	ErrRunnerStarted = errors.New("system: runner already started")
	// ErrReentrantTick is returned when a system calls back into Tick.
	ErrReentrantTick = errors.New("system: tick is not reentrant")
)

// Runner executes systems in phase order each frame. Systems sharing a phase
// keep their registration order.
type Runner struct {
	systems []System
	sorted  bool
	started bool
	running bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
	}
}

// Register adds a system. The pipeline is frozen after the first Tick.
func (r *Runner) Register(s System) error {
	if r.started {
		return ErrRunnerStarted
	}
	r.systems = append(r.systems, s)
	r.sorted = false
	return nil
}

// Len returns the number of registered systems.
func (r *Runner) Len() int {
	return len(r.systems)
}

// Tick runs one full frame. The first failing system stops the frame.
func (r *Runner) Tick(dt time.Duration) error {
	return r.run(dt, func(System) bool { return true })
}

// TickPhase runs only the systems of one phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) error {
	return r.run(dt, func(s System) bool { return s.Phase() == phase })
}

// Phases lists the phase of every registered system in execution order.
func (r *Runner) Phases() []Phase {
	r.ensureSorted()
	out := make([]Phase, len(r.systems))
	for i, s := range r.systems {
		out[i] = s.Phase()
	}
	return out
}

func (r *Runner) run(dt time.Duration, want func(System) bool) error {
	if r.running {
		return ErrReentrantTick
	}
	r.ensureSorted()
	r.started = true
	r.running = true
	defer func() { r.running = false }()

	for _, s := range r.systems {
		if !want(s) {
			continue
		}
		if err := s.Update(dt); err != nil {
			return fmt.Errorf("%s %T: %w", s.Phase(), s, err)
		}
	}
	return nil
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
