// Package multimap implements a concurrent, multi-indexed,
// reference-counted object cache with miss-coalescing and LRU eviction.
//
// A Cache memoizes a small set of immutable entity snapshots, indexed
// simultaneously by up to three caller-defined key kinds plus the entity's
// own identity. Callers look an entity up by any of its keys, get back a
// pinned Handle, and release it when done; concurrent lookups for the same
// missing key block on one loader rather than stampeding the backing
// store.
package multimap

import (
	"log/slog"
	"sync"

	"github.com/dbmeta/metacache/autolock"
)

// Handle is the reference-counted wrapper callers receive from Get/Put and
// pass back to Release/Drop/Replace/SetSticky. Its fields are private; use
// Object, Usage, and Sticky to inspect it.
type Handle[IDKey, NameKey, AuxKey comparable, E Entity[IDKey, NameKey, AuxKey]] = element[IDKey, NameKey, AuxKey, E]

// Object returns the entity snapshot this handle wraps.
func (w *element[IDKey, NameKey, AuxKey, E]) Object() E { return w.object }

// Usage returns the handle's current pin count.
func (w *element[IDKey, NameKey, AuxKey, E]) Usage() int { return w.usage }

// Sticky reports whether the handle is currently exempt from LRU eviction.
func (w *element[IDKey, NameKey, AuxKey, E]) Sticky() bool { return w.sticky }

// Cache is the public façade: the multi-map base, free list, element pool,
// capacity, lock, and miss condition variable described in the design's
// "shared multi-map" component.
type Cache[IDKey, NameKey, AuxKey comparable, E Entity[IDKey, NameKey, AuxKey]] struct {
	mu   sync.Mutex
	cond *sync.Cond

	base base[IDKey, NameKey, AuxKey, E]
	free freeList[IDKey, NameKey, AuxKey, E]
	pool []*element[IDKey, NameKey, AuxKey, E]

	capacity     int
	poolCapacity int
	logger       *slog.Logger

	shutdownCalled bool
}

// New builds an empty Cache for one entity kind. Instantiate it once per
// entity kind (see package entities for the conventional wiring of typed
// aliases and constructors).
func New[IDKey, NameKey, AuxKey comparable, E Entity[IDKey, NameKey, AuxKey]](opts ...Option) *Cache[IDKey, NameKey, AuxKey, E] {
	cfg := newConfig(opts)
	c := &Cache[IDKey, NameKey, AuxKey, E]{
		base:         newBase[IDKey, NameKey, AuxKey, E](),
		capacity:     cfg.capacity,
		poolCapacity: cfg.poolCapacity,
		logger:       cfg.logger,
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// GetByID looks up an entity by its primary key. See getFromMap for the
// shared hit/miss/wait protocol.
func (c *Cache[IDKey, NameKey, AuxKey, E]) GetByID(key IDKey) (needsLoad bool, w *Handle[IDKey, NameKey, AuxKey, E]) {
	return getFromMap(c, &c.base.byID, key)
}

// GetByName looks up an entity by its secondary key.
func (c *Cache[IDKey, NameKey, AuxKey, E]) GetByName(key NameKey) (needsLoad bool, w *Handle[IDKey, NameKey, AuxKey, E]) {
	return getFromMap(c, &c.base.byName, key)
}

// GetByAux looks up an entity by its tertiary key.
func (c *Cache[IDKey, NameKey, AuxKey, E]) GetByAux(key AuxKey) (needsLoad bool, w *Handle[IDKey, NameKey, AuxKey, E]) {
	return getFromMap(c, &c.base.byAux, key)
}

// PutByID resolves a load that was triggered by GetByID. entity should be
// the loaded value, or the zero value of E (e.g. a nil pointer) to signal
// "not found". The loader protocol requires calling exactly one PutBy*
// method, on the same key kind as the triggering Get*, for every
// needsLoad==true it receives — a skipped Put deadlocks every other
// waiter on that key permanently.
func (c *Cache[IDKey, NameKey, AuxKey, E]) PutByID(key IDKey, entity E) *Handle[IDKey, NameKey, AuxKey, E] {
	return putViaMap(c, &c.base.byID, key, entity)
}

// PutByName resolves a load that was triggered by GetByName.
func (c *Cache[IDKey, NameKey, AuxKey, E]) PutByName(key NameKey, entity E) *Handle[IDKey, NameKey, AuxKey, E] {
	return putViaMap(c, &c.base.byName, key, entity)
}

// PutByAux resolves a load that was triggered by GetByAux.
func (c *Cache[IDKey, NameKey, AuxKey, E]) PutByAux(key AuxKey, entity E) *Handle[IDKey, NameKey, AuxKey, E] {
	return putViaMap(c, &c.base.byAux, key, entity)
}

// Release decrements w's pin count. If it reaches zero and w is not
// sticky, w joins the free list and an eviction pass runs.
func (c *Cache[IDKey, NameKey, AuxKey, E]) Release(w *Handle[IDKey, NameKey, AuxKey, E]) {
	g := autolock.Acquire(&c.mu)
	defer g.Release()

	invariant(w.usage > 0, "Release: usage already zero")
	w.usage--
	if w.usage == 0 && !w.sticky {
		c.free.pushBack(w)
		c.rectifyFreeListLocked(g)
	}
}

// Drop deregisters w unconditionally, clearing stickiness first. The caller
// must hold the sole pin (usage == 1).
func (c *Cache[IDKey, NameKey, AuxKey, E]) Drop(w *Handle[IDKey, NameKey, AuxKey, E]) {
	g := autolock.Acquire(&c.mu)
	defer g.Release()

	invariant(w.usage == 1, "Drop: caller must hold the sole pin")
	w.sticky = false
	c.removeLocked(g, w)
}

// Replace swaps w's entity for newEntity in place, re-keying w under the
// new entity's derived keys. The caller must hold the sole pin.
func (c *Cache[IDKey, NameKey, AuxKey, E]) Replace(w *Handle[IDKey, NameKey, AuxKey, E], newEntity E) {
	g := autolock.Acquire(&c.mu)
	defer g.Release()

	var zero E
	invariant(w.usage == 1, "Replace: caller must hold the sole pin")
	invariant(newEntity != zero, "Replace: new entity must not be the zero value")

	c.base.removeSingleElement(w)
	if newEntity != w.object {
		old := w.object
		g.Defer(func() { destroy(old) })
	}
	w.installKeys(newEntity)
	c.base.addSingleElement(w)
}

// SetSticky flips w's stickiness. The caller must hold the sole pin. If v
// already equals the current stickiness, this is a logged no-op rather
// than a contract violation (spec §9 open question, relaxed).
func (c *Cache[IDKey, NameKey, AuxKey, E]) SetSticky(w *Handle[IDKey, NameKey, AuxKey, E], v bool) {
	g := autolock.Acquire(&c.mu)
	defer g.Release()

	invariant(w.usage == 1, "SetSticky: caller must hold the sole pin")
	if w.sticky == v {
		c.logger.Debug("multimap: SetSticky called with the value it already has, treating as no-op")
		return
	}
	w.sticky = v
}

// Shutdown sweeps every unreferenced element (clearing stickiness first),
// then asserts the cache is empty: a non-empty cache at shutdown means a
// caller leaked a pin. Safe to call at most once.
func (c *Cache[IDKey, NameKey, AuxKey, E]) Shutdown() {
	g := autolock.Acquire(&c.mu)
	defer g.Release()

	c.capacity = 0
	c.evictAllUnusedLocked(g)

	if c.base.size != 0 {
		c.logger.Warn("multimap: shutdown with elements still registered, caller leaked a pin",
			"remaining", c.base.size)
		panic(invariantMsg("Shutdown: snapshot map non-empty after eviction sweep"))
	}
	c.pool = nil
	c.shutdownCalled = true
}

// Snapshot is a lock-held, best-effort point-in-time view of the cache's
// internal sizes, for tests and operator diagnostics. It is not part of the
// hot path and carries no hit/miss counters (spec non-goal).
type Snapshot struct {
	IDKeys      int
	NameKeys    int
	AuxKeys     int
	Registered  int
	FreeListLen int
	PoolLen     int
}

// DebugSnapshot returns a Snapshot of the cache's current internal sizes.
func (c *Cache[IDKey, NameKey, AuxKey, E]) DebugSnapshot() Snapshot {
	g := autolock.Acquire(&c.mu)
	defer g.Release()

	return Snapshot{
		IDKeys:      c.base.byID.size(),
		NameKeys:    c.base.byName.size(),
		AuxKeys:     c.base.byAux.size(),
		Registered:  c.base.size,
		FreeListLen: c.free.len(),
		PoolLen:     len(c.pool),
	}
}

// --- internal helpers -------------------------------------------------

// getFromMap implements the shared three-branch Get protocol (spec §4.5
// get) for whichever per-kind map the caller's exported Get* method
// targets.
func getFromMap[IDKey, NameKey, AuxKey comparable, E Entity[IDKey, NameKey, AuxKey], K comparable](
	c *Cache[IDKey, NameKey, AuxKey, E],
	m *elementMap[K, element[IDKey, NameKey, AuxKey, E]],
	key K,
) (needsLoad bool, w *element[IDKey, NameKey, AuxKey, E]) {
	g := autolock.Acquire(&c.mu)
	defer g.Release()

	if w, ok := useIfPresent(c, m, key); ok {
		return false, w
	}

	if m.isMissed(key) {
		// A load for this key is already in progress. Wait for it to
		// resolve and report whatever it resolved to — including a
		// negative result — instead of looping back to the top and
		// becoming a second designated loader. shared_multi_map.cc's
		// get() returns unconditionally after this wait for exactly this
		// reason: "the other thread tried to load the object, but found
		// that it did not exist."
		for m.isMissed(key) {
			c.cond.Wait()
		}
		w, _ := useIfPresent(c, m, key)
		return false, w
	}

	m.setMissed(key)
	return true, nil
}

// useIfPresent looks key up in m; if found, pins it (removing it from the
// free list first if it was unreferenced and non-sticky).
func useIfPresent[IDKey, NameKey, AuxKey comparable, E Entity[IDKey, NameKey, AuxKey], K comparable](
	c *Cache[IDKey, NameKey, AuxKey, E],
	m *elementMap[K, element[IDKey, NameKey, AuxKey, E]],
	key K,
) (*element[IDKey, NameKey, AuxKey, E], bool) {
	w, ok := m.get(key)
	if !ok {
		return nil, false
	}
	if w.usage == 0 && !w.sticky {
		c.free.remove(w)
	}
	w.usage++
	return w, true
}

// checkKind reports whether key is currently present in m, and — as a side
// effect — marks any in-progress miss on key as handled, recording that
// fact in *anyMissed.
func checkKind[K comparable, W any](m *elementMap[K, W], key K, anyMissed *bool) bool {
	if m.isMissed(key) {
		m.setMissHandled(key)
		*anyMissed = true
	}
	return m.isPresent(key)
}

// putViaMap implements the shared Put protocol (spec §4.5 put) for
// whichever per-kind map the caller's exported Put* method targets.
// triggerMap/triggerKey identify the key that caused the original miss, so
// a concurrent-race loss can resolve back to the winning element.
func putViaMap[IDKey, NameKey, AuxKey comparable, E Entity[IDKey, NameKey, AuxKey], K comparable](
	c *Cache[IDKey, NameKey, AuxKey, E],
	triggerMap *elementMap[K, element[IDKey, NameKey, AuxKey, E]],
	triggerKey K,
	entity E,
) *element[IDKey, NameKey, AuxKey, E] {
	g := autolock.Acquire(&c.mu)
	defer g.Release()

	var zero E
	if entity == zero {
		// Negative load: the entry never existed. Handled/clear the
		// triggering key's miss marker and wake every waiter; each
		// rechecks its own key.
		if triggerMap.isMissed(triggerKey) {
			triggerMap.setMissHandled(triggerKey)
			triggerMap.clearMissed(triggerKey)
		}
		c.cond.Broadcast()
		return nil
	}

	w := c.obtainElement()
	w.installKeys(entity)
	invariant(w.anyKeyPresent(), "Put: entity produced no derived keys")

	anyMissed := false
	var idFound, nameFound, auxFound bool
	if w.hasID {
		idFound = checkKind(&c.base.byID, w.idKey, &anyMissed)
	}
	if w.hasName {
		nameFound = checkKind(&c.base.byName, w.nameKey, &anyMissed)
	}
	if w.hasAux {
		auxFound = checkKind(&c.base.byAux, w.auxKey, &anyMissed)
	}

	anyFound := (w.hasID && idFound) || (w.hasName && nameFound) || (w.hasAux && auxFound)
	allFound := (!w.hasID || idFound) && (!w.hasName || nameFound) && (!w.hasAux || auxFound)

	switch {
	case !anyFound: // none_present: this Put wins the race.
		c.rectifyFreeListLocked(g)
		w.usage = 1
		c.base.addSingleElement(w)
		if anyMissed {
			c.cond.Broadcast()
		}
		return w

	case allFound: // all_present: a concurrent loader already won.
		invariant(!anyMissed, "Put: lost insertion race but observed a key still marked missed")
		lost := entity
		g.Defer(func() { destroy(lost) })
		c.returnToPoolOrDestroyLocked(g, w)
		existing, ok := useIfPresent(c, triggerMap, triggerKey)
		invariant(ok, "Put: triggering key must resolve after losing the insertion race")
		return existing

	default:
		panic(invariantMsg("Put: entity's derived keys are neither all present nor all absent"))
	}
}

// obtainElement pops a reusable wrapper from the pool, or allocates a fresh
// one if the pool is empty.
func (c *Cache[IDKey, NameKey, AuxKey, E]) obtainElement() *element[IDKey, NameKey, AuxKey, E] {
	if n := len(c.pool); n > 0 {
		w := c.pool[n-1]
		c.pool = c.pool[:n-1]
		return w
	}
	return newElement[IDKey, NameKey, AuxKey, E]()
}

// returnToPoolOrDestroyLocked reclaims an unregistered wrapper that lost a
// Put race: pooled if there's room, otherwise scheduled for destruction.
func (c *Cache[IDKey, NameKey, AuxKey, E]) returnToPoolOrDestroyLocked(g *autolock.Guard, w *element[IDKey, NameKey, AuxKey, E]) {
	if !c.poolCapacityExceeded() {
		w.reset()
		c.pool = append(c.pool, w)
		return
	}
	g.Defer(func() { destroy(w) })
}

// removeLocked deregisters a pinned-to-exactly-one, non-sticky, registered
// element (spec §4.6.2 remove), scheduling its entity for deferred
// destruction and either pooling or destroying the wrapper itself.
func (c *Cache[IDKey, NameKey, AuxKey, E]) removeLocked(g *autolock.Guard, w *element[IDKey, NameKey, AuxKey, E]) {
	invariant(w.usage == 1, "removeLocked: usage must be exactly 1")
	invariant(!w.sticky, "removeLocked: element must not be sticky")
	invariant(w.registered, "removeLocked: element must be registered")

	c.base.removeSingleElement(w)

	obj := w.object
	g.Defer(func() { destroy(obj) })

	if !c.poolCapacityExceeded() {
		w.reset()
		c.pool = append(c.pool, w)
	} else {
		g.Defer(func() { destroy(w) })
	}
}

// rectifyFreeListLocked evicts least-recently-freed elements while the
// registered count exceeds the soft capacity and the free list is
// non-empty (spec §4.6.3).
func (c *Cache[IDKey, NameKey, AuxKey, E]) rectifyFreeListLocked(g *autolock.Guard) {
	for c.mapCapacityExceeded() && c.free.len() > 0 {
		w := c.free.lru()
		c.free.remove(w)
		w.usage = 1
		c.removeLocked(g, w)
	}
}

// evictAllUnusedLocked clears stickiness from every registered element,
// adds newly-unexempted unreferenced elements to the free list, then
// drains the free list completely regardless of capacity (spec §4.6.4).
func (c *Cache[IDKey, NameKey, AuxKey, E]) evictAllUnusedLocked(g *autolock.Guard) {
	c.base.bySnap.all(func(_ E, w *element[IDKey, NameKey, AuxKey, E]) bool {
		wasSticky := w.sticky
		if wasSticky {
			w.sticky = false
		}
		if w.usage == 0 && wasSticky {
			c.free.pushBack(w)
		}
		return true
	})

	for c.free.len() > 0 {
		w := c.free.lru()
		c.free.remove(w)
		w.usage = 1
		c.removeLocked(g, w)
	}
}

func (c *Cache[IDKey, NameKey, AuxKey, E]) mapCapacityExceeded() bool {
	if c.capacity < 0 {
		return false // unbounded: negative capacity disables eviction-by-capacity entirely.
	}
	return c.base.size > c.capacity
}

func (c *Cache[IDKey, NameKey, AuxKey, E]) poolCapacityExceeded() bool {
	return len(c.pool) >= c.poolCapacity
}
