// Package input carries the per-frame intent snapshot from the input
// collaborator into the simulation. Nothing here polls devices.
package input

// Snapshot is the intent state for one frame. Movement and Jump are level
// triggered (held keys); Damage and Heal are edge triggered and must be set
// for a single frame per key press.
type Snapshot struct {
	Left   bool
	Right  bool
	Jump   bool
	Damage bool
	Heal   bool
}

// Source supplies the snapshot for the frame being simulated.
type Source interface {
	Snapshot() Snapshot
}

// Buffer is a Source the collaborator writes before each frame.
type Buffer struct {
	current Snapshot
}

// Set replaces the snapshot used by the next frame.
func (b *Buffer) Set(s Snapshot) {
	b.current = s
}

func (b *Buffer) Snapshot() Snapshot {
	return b.current
}

// ClearEdges drops the one-shot intents once a frame consumed them.
func (b *Buffer) ClearEdges() {
	b.current.Damage = false
	b.current.Heal = false
}

// Idle is a Source with no intents, used by the headless driver.
type Idle struct{}

func (Idle) Snapshot() Snapshot { return Snapshot{} }
