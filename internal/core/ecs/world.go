package ecs

// World is the top-level ECS container. It owns the entity pool, the component
// registry, and a deferred destruction queue flushed by CleanupSystem each frame.
//
// Structural changes (create, destroy, add, remove) while walking a store's
// Entities slice corrupt the walk. Systems collect ids first, or queue them
// with MarkForDestruction, and apply the changes after iterating.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
	onDestroy    []func(EntityID)
}

// NewWorld creates a world whose stores hold up to maxEntities ids.
func NewWorld(maxEntities int) *World {
	if maxEntities <= 0 {
		maxEntities = DefaultMaxEntities
	}
	return &World{
		pool:         NewEntityPool(maxEntities),
		registry:     NewRegistry(maxEntities),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() (EntityID, error) {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// DestroyEntity releases id and strips it from every store. Destroy hooks
// run before the components are removed.
func (w *World) DestroyEntity(id EntityID) {
	if !w.pool.Destroy(id) {
		return
	}
	for _, fn := range w.onDestroy {
		fn(id)
	}
	w.registry.RemoveAll(id)
}

// OnDestroy registers fn to run for every entity DestroyEntity releases.
// Hooks use it to drop ids held inside other entities' components, since a
// released id is handed out again by the next CreateEntity.
func (w *World) OnDestroy(fn func(EntityID)) {
	w.onDestroy = append(w.onDestroy, fn)
}

// MarkForDestruction queues an entity for end-of-frame cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// PendingDestruction returns the number of queued ids.
func (w *World) PendingDestruction() int {
	return len(w.destroyQueue)
}

// FlushDestroyQueue destroys all queued entities and clears their components.
// Called by CleanupSystem at the end of each frame.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.destroyQueue {
		w.DestroyEntity(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
}

// AddComponent attaches c to id. An existing T is left untouched.
func AddComponent[T any](w *World, id EntityID, c T) {
	StoreOf[T](w).Insert(id, c)
}

func RemoveComponent[T any](w *World, id EntityID) {
	StoreOf[T](w).Remove(id)
}

func GetComponent[T any](w *World, id EntityID) (*T, bool) {
	return StoreOf[T](w).Get(id)
}

func HasComponent[T any](w *World, id EntityID) bool {
	return StoreOf[T](w).Has(id)
}

// EntitiesWith returns a snapshot of the ids holding T. Unlike
// Store.Entities the result is safe to keep while mutating the world.
func EntitiesWith[T any](w *World) []EntityID {
	live := StoreOf[T](w).Entities()
	out := make([]EntityID, len(live))
	copy(out, live)
	return out
}
