package system

import "time"

// Phase defines execution ordering within a single frame. The order is
// fixed: ground detection reads last frame's final position before input
// decides jump eligibility, gravity precedes integration, and collision
// corrects what integration just produced. The cosmetic stages run last so
// they see this frame's final transforms.
type Phase int

const (
	PhaseGroundDetect Phase = iota // 0: refresh PlayerController.IsGrounded
	PhaseInput                     // 1: input snapshot -> velocity / jump
	PhaseHealth                    // 2: damage/heal intents
	PhaseGravity                   // 3: accelerate falling bodies
	PhaseMovement                  // 4: integrate + world bounds
	PhaseCollision                 // 5: pairwise AABB resolution
	PhaseAnimation                 // 6: sprite frame stepping
	PhaseParticles                 // 7: emit + age particles
	PhaseLifetime                  // 8: timed expiry
	PhaseFollow                    // 9: attach followers to their targets
	PhaseEvents                    // 10: deliver this frame's game-state events
	PhaseCleanup                   // 11: destroy queued entities
)

var phaseNames = [...]string{
	"ground_detect", "input", "health", "gravity", "movement", "collision",
	"animation", "particles", "lifetime", "follow", "events", "cleanup",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every frame system implements. Update receives the
// frame's delta time and must run to completion; a returned error aborts the
// frame.
type System interface {
	Phase() Phase
	Update(dt time.Duration) error
}
