package fungeon

import (
	"fmt"
	"reflect"
)

// World owns entities, their components, and the component-kind registry.
// It is single-threaded by contract: one logical thread touches a World per
// frame, so no locking is performed.
type World struct {
	slots []slot
	free  []uint32

	stores      map[reflect.Type]store
	kindsByName map[string]reflect.Type
	kindNames   map[reflect.Type]string

	// Deferred destruction: entities destroyed while a query is being
	// iterated are queued and reaped when the outermost iteration ends.
	iterDepth int
	pending   []Entity
}

type slot struct {
	gen    uint32
	alive  bool
	name   string
	parent Entity
}

// store is the type-erased face of a typedStore, used when destroying an
// entity without knowing its component kinds.
type store interface {
	removeEntity(e Entity) bool
}

type typedStore[T any] struct {
	dense  []T
	owners []Entity
	sparse map[uint32]int // entity id -> dense index
}

func (s *typedStore[T]) removeEntity(e Entity) bool {
	i, ok := s.sparse[e.id]
	if !ok || s.owners[i] != e {
		return false
	}
	last := len(s.dense) - 1
	s.dense[i] = s.dense[last]
	s.owners[i] = s.owners[last]
	s.sparse[s.owners[i].id] = i
	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.owners = s.owners[:last]
	delete(s.sparse, e.id)
	return true
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		stores:      make(map[reflect.Type]store),
		kindsByName: make(map[string]reflect.Type),
		kindNames:   make(map[reflect.Type]string),
	}
}

// Create allocates a new entity with an optional display name.
// The returned handle stays unique for the entity's lifetime; slots are
// recycled only under a new generation.
func (w *World) Create(name string) Entity {
	var id uint32
	if n := len(w.free); n > 0 {
		id = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		id = uint32(len(w.slots))
		w.slots = append(w.slots, slot{gen: 1})
	}
	s := &w.slots[id]
	s.alive = true
	s.name = name
	s.parent = NoEntity
	return Entity{id: id, gen: s.gen}
}

// Alive reports whether e refers to a live entity in this World.
func (w *World) Alive(e Entity) bool {
	if !e.Valid() || int(e.id) >= len(w.slots) {
		return false
	}
	s := &w.slots[e.id]
	return s.alive && s.gen == e.gen
}

// Name returns the entity's display name, or "" for a dead handle.
func (w *World) Name(e Entity) string {
	if !w.Alive(e) {
		return ""
	}
	return w.slots[e.id].name
}

// Destroy removes the entity and all its components. During iteration the
// request is deferred until the outermost query finishes, so result sets
// stay valid for the current system pass. Weak references held elsewhere
// (constraint targets, parent links) are not fixed up; they dangle and must
// be liveness-checked by whoever resolves them.
func (w *World) Destroy(e Entity) {
	if !w.Alive(e) {
		return
	}
	if w.iterDepth > 0 {
		w.pending = append(w.pending, e)
		return
	}
	w.destroyNow(e)
}

func (w *World) destroyNow(e Entity) {
	for _, s := range w.stores {
		s.removeEntity(e)
	}
	sl := &w.slots[e.id]
	sl.alive = false
	sl.gen++
	sl.name = ""
	sl.parent = NoEntity
	w.free = append(w.free, e.id)
}

// SetParent records parent as the entity's hierarchy parent. The link is
// informational only — the World keeps owning the child. Pass NoEntity to
// clear. Panics if child is dead or the link would close a cycle.
func (w *World) SetParent(child, parent Entity) {
	if !w.Alive(child) {
		panic("fungeon: SetParent on dead entity")
	}
	if parent.Valid() {
		for p := parent; p.Valid() && w.Alive(p); p = w.slots[p.id].parent {
			if p == child {
				panic("fungeon: SetParent would create a cycle")
			}
		}
	}
	w.slots[child.id].parent = parent
}

// Parent returns the entity's recorded parent. The returned handle may be
// dead; callers must check with Alive before use.
func (w *World) Parent(e Entity) Entity {
	if !w.Alive(e) {
		return NoEntity
	}
	return w.slots[e.id].parent
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return len(w.slots) - len(w.free) - len(w.pending)
}

func (w *World) beginIter() {
	w.iterDepth++
}

func (w *World) endIter() {
	w.iterDepth--
	if w.iterDepth == 0 && len(w.pending) > 0 {
		for _, e := range w.pending {
			if w.Alive(e) {
				w.destroyNow(e)
			}
		}
		w.pending = w.pending[:0]
	}
}

// --- Component kind registry ---

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// RegisterKind binds a stable string name to the component type T for
// (de)serialization lookups. Registering the same pair twice is a no-op;
// rebinding either side returns a ConfigurationError.
func RegisterKind[T any](w *World, name string) error {
	t := typeOf[T]()
	if prev, ok := w.kindNames[t]; ok && prev != name {
		return configErrorf("component type %s already registered as %q", t, prev)
	}
	if prev, ok := w.kindsByName[name]; ok && prev != t {
		return configErrorf("component name %q already registered for %s", name, prev)
	}
	w.kindNames[t] = name
	w.kindsByName[name] = t
	return nil
}

// KindByName returns the component type registered under name.
func (w *World) KindByName(name string) (reflect.Type, bool) {
	t, ok := w.kindsByName[name]
	return t, ok
}

// KindName returns the stable name for component type T, auto-registering
// the Go type name if none was registered explicitly.
func KindName[T any](w *World) string {
	return w.ensureKindName(typeOf[T]())
}

func (w *World) ensureKindName(t reflect.Type) string {
	if name, ok := w.kindNames[t]; ok {
		return name
	}
	name := t.Name()
	if name == "" || w.kindsByName[name] != nil {
		name = t.String()
	}
	w.kindNames[t] = name
	w.kindsByName[name] = t
	return name
}

func storeOf[T any](w *World, create bool) *typedStore[T] {
	t := typeOf[T]()
	if s, ok := w.stores[t]; ok {
		return s.(*typedStore[T])
	}
	if !create {
		return nil
	}
	w.ensureKindName(t)
	s := &typedStore[T]{sparse: make(map[uint32]int)}
	w.stores[t] = s
	return s
}

// --- Component operations ---

// Add attaches a component of kind T to the entity and returns a pointer to
// the stored instance. At most one component of a given kind may exist per
// entity; a second add returns a *DuplicateComponentError. Panics if the
// entity is dead.
func Add[T any](w *World, e Entity, v T) (*T, error) {
	if !w.Alive(e) {
		panic("fungeon: Add on dead entity")
	}
	s := storeOf[T](w, true)
	if i, ok := s.sparse[e.id]; ok && s.owners[i] == e {
		return nil, &DuplicateComponentError{Entity: e, Kind: KindName[T](w)}
	}
	s.dense = append(s.dense, v)
	s.owners = append(s.owners, e)
	s.sparse[e.id] = len(s.dense) - 1
	return &s.dense[len(s.dense)-1], nil
}

// MustAdd is Add for wiring code that treats a duplicate as a bug.
func MustAdd[T any](w *World, e Entity, v T) *T {
	p, err := Add(w, e, v)
	if err != nil {
		panic(fmt.Sprintf("fungeon: %v", err))
	}
	return p
}

// Get returns the entity's component of kind T, or nil if absent or the
// entity is dead. The pointer is valid until a component of kind T is added
// or removed anywhere in the World.
func Get[T any](w *World, e Entity) *T {
	if !w.Alive(e) {
		return nil
	}
	s := storeOf[T](w, false)
	if s == nil {
		return nil
	}
	i, ok := s.sparse[e.id]
	if !ok || s.owners[i] != e {
		return nil
	}
	return &s.dense[i]
}

// Remove detaches the entity's component of kind T. Reports whether a
// component was removed. Must not be called for kind T while Each[T] is
// iterating that same kind.
func Remove[T any](w *World, e Entity) bool {
	if !w.Alive(e) {
		return false
	}
	s := storeOf[T](w, false)
	if s == nil {
		return false
	}
	return s.removeEntity(e)
}

// Each calls fn for every live entity holding a component of kind T.
// Iteration order is unspecified but stable within a frame. Entities
// destroyed from inside fn are reaped after the outermost iteration ends.
func Each[T any](w *World, fn func(Entity, *T)) {
	s := storeOf[T](w, false)
	if s == nil {
		return
	}
	w.beginIter()
	defer w.endIter()
	for i := 0; i < len(s.dense); i++ {
		fn(s.owners[i], &s.dense[i])
	}
}

// Query returns the entities holding a component of kind T.
func Query[T any](w *World) []Entity {
	s := storeOf[T](w, false)
	if s == nil {
		return nil
	}
	out := make([]Entity, len(s.owners))
	copy(out, s.owners)
	return out
}

// Query2 returns the entities holding components of both kinds A and B,
// ordered by the A store.
func Query2[A, B any](w *World) []Entity {
	sa := storeOf[A](w, false)
	sb := storeOf[B](w, false)
	if sa == nil || sb == nil {
		return nil
	}
	var out []Entity
	for _, e := range sa.owners {
		if i, ok := sb.sparse[e.id]; ok && sb.owners[i] == e {
			out = append(out, e)
		}
	}
	return out
}
