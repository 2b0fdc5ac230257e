package system

import (
	"time"

	"github.com/l1jgo/platcore/internal/component"
	"github.com/l1jgo/platcore/internal/core/ecs"
	coresys "github.com/l1jgo/platcore/internal/core/system"
)

// AnimationSystem steps sprite-sheet animations and points the sprite's
// source rectangle at the current frame. Frames are laid out left to right
// on one row.
// Phase 6 (Animation).
type AnimationSystem struct {
	animations *ecs.Store[component.Animation]
	sprites    *ecs.Store[component.Sprite]
}

func NewAnimationSystem(w *ecs.World) *AnimationSystem {
	return &AnimationSystem{
		animations: ecs.StoreOf[component.Animation](w),
		sprites:    ecs.StoreOf[component.Sprite](w),
	}
}

func (s *AnimationSystem) Phase() coresys.Phase { return coresys.PhaseAnimation }

func (s *AnimationSystem) Update(dt time.Duration) error {
	sec := dt.Seconds()
	ecs.Each2(s.animations, s.sprites, func(_ ecs.EntityID, anim *component.Animation, sp *component.Sprite) {
		if !anim.Playing || anim.TotalFrames <= 0 {
			return
		}
		anim.ElapsedTime += sec
		if anim.ElapsedTime >= anim.FrameTime {
			anim.ElapsedTime = 0
			anim.CurrentFrame++
			if anim.CurrentFrame >= anim.TotalFrames {
				if anim.Loop {
					anim.CurrentFrame = 0
				} else {
					anim.CurrentFrame = anim.TotalFrames - 1
					anim.Playing = false
				}
			}
		}
		// without a sheet the sprite keeps its own texture
		if anim.SpriteSheet != nil {
			sp.Texture = anim.SpriteSheet
		}
		sp.SrcX = anim.CurrentFrame * anim.FrameWidth
		sp.SrcY = 0
		sp.SrcWidth = anim.FrameWidth
		sp.SrcHeight = anim.FrameHeight
	})
	return nil
}
