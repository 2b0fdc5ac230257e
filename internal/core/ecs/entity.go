package ecs

import (
	"errors"
	"fmt"
)

// EntityID is an opaque entity handle in [0, capacity).
// There is no generation counter: once destroyed, an id handed out again is
// indistinguishable from a new entity. Callers must drop ids they destroyed.
type EntityID uint32

// NoEntity is never issued by a pool. Components use it for a reference
// whose entity has been destroyed.
const NoEntity EntityID = 1<<32 - 1

// DefaultMaxEntities is the live-entity limit used when none is configured.
const DefaultMaxEntities = 5000

// ErrEntityLimit is returned when every id below the configured maximum is live.
// Storage is sized once from that maximum, so the fix is configuration.
var ErrEntityLimit = errors.New("ecs: entity limit reached")

// EntityPool is the entity registry: it issues ids from a LIFO free list.
// The list starts as [0, max) with 0 on top, and the most recently
// destroyed id is the next one reused.
type EntityPool struct {
	freeList []EntityID
	alive    []bool
	living   int
}

func NewEntityPool(max int) *EntityPool {
	if max <= 0 {
		max = DefaultMaxEntities
	}
	p := &EntityPool{
		freeList: make([]EntityID, 0, max),
		alive:    make([]bool, max),
	}
	for i := max - 1; i >= 0; i-- {
		p.freeList = append(p.freeList, EntityID(i))
	}
	return p
}

// Create pops the next free id.
func (p *EntityPool) Create() (EntityID, error) {
	n := len(p.freeList)
	if n == 0 {
		return 0, fmt.Errorf("%w (max %d)", ErrEntityLimit, len(p.alive))
	}
	id := p.freeList[n-1]
	p.freeList = p.freeList[:n-1]
	p.alive[id] = true
	p.living++
	return id, nil
}

func (p *EntityPool) Alive(id EntityID) bool {
	return int(id) < len(p.alive) && p.alive[id]
}

// Destroy returns id to the free list and reports whether it was live.
// Ids that are not live are ignored so a double destroy cannot put the
// same id on the free list twice.
func (p *EntityPool) Destroy(id EntityID) bool {
	if !p.Alive(id) {
		return false
	}
	p.alive[id] = false
	p.living--
	p.freeList = append(p.freeList, id)
	return true
}

// Living returns the number of live entities.
func (p *EntityPool) Living() int { return p.living }

// Capacity returns the configured maximum.
func (p *EntityPool) Capacity() int { return len(p.alive) }
