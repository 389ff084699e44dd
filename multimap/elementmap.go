package multimap

// missEntry marks that a load for a key is in progress. handled records
// that some Put observed this key mid-resolution; it is advisory only —
// no code path branches on it — and is carried because the spec's data
// model names it. The actual coordination signal waiters act on is
// isMissed/clearMissed, checked directly against the missed map.
type missEntry struct {
	handled bool
}

// elementMap is a mapping from keys of one kind to cache elements,
// augmented with a "miss in progress" marker set. One instance
// exists per key kind (id, name, aux, snapshot); W is the generic wrapper
// type, parameterized identically across all four maps owned by one Cache.
type elementMap[K comparable, W any] struct {
	present map[K]*W
	missed  map[K]*missEntry
}

func newElementMap[K comparable, W any]() elementMap[K, W] {
	return elementMap[K, W]{
		present: make(map[K]*W),
		missed:  make(map[K]*missEntry),
	}
}

func (m *elementMap[K, W]) get(k K) (*W, bool) {
	w, ok := m.present[k]
	return w, ok
}

func (m *elementMap[K, W]) isPresent(k K) bool {
	_, ok := m.present[k]
	return ok
}

func (m *elementMap[K, W]) isMissed(k K) bool {
	_, ok := m.missed[k]
	return ok
}

// setMissed records that a load for k has started. Precondition: k is not
// already present and not already missed (I2, I7).
func (m *elementMap[K, W]) setMissed(k K) {
	if _, ok := m.present[k]; ok {
		panic(invariantMsg("setMissed: key already present"))
	}
	if _, ok := m.missed[k]; ok {
		panic(invariantMsg("setMissed: key already missed"))
	}
	m.missed[k] = &missEntry{}
}

// setMissHandled flips the handled flag for a missed key, leaving the entry
// in place. The loader calls this before broadcasting; the entry itself is
// cleared later by insert (positive load) or clearMissed (negative load).
func (m *elementMap[K, W]) setMissHandled(k K) {
	if e, ok := m.missed[k]; ok {
		e.handled = true
	}
}

// clearMissed drops the missed marker for k without installing a value —
// used for the negative-load outcome.
func (m *elementMap[K, W]) clearMissed(k K) {
	delete(m.missed, k)
}

// insert adds k -> w to present. Precondition: k is absent from present
// (I1). Also clears any missed marker for k, since a successful insertion
// resolves the in-progress load.
func (m *elementMap[K, W]) insert(k K, w *W) {
	if _, ok := m.present[k]; ok {
		panic(invariantMsg("insert: key already present"))
	}
	m.present[k] = w
	delete(m.missed, k)
}

// remove deletes k from present. Precondition: k is present and not missed
// (I2).
func (m *elementMap[K, W]) remove(k K) {
	if _, ok := m.present[k]; !ok {
		panic(invariantMsg("remove: key not present"))
	}
	if _, ok := m.missed[k]; ok {
		panic(invariantMsg("remove: key unexpectedly missed"))
	}
	delete(m.present, k)
}

// all iterates the present map, calling fn for every entry until fn returns
// false. Used only on the snapshot map, by Shutdown's eviction sweep; the
// other kind-specific maps never need full iteration.
func (m *elementMap[K, W]) all(fn func(k K, w *W) bool) {
	for k, w := range m.present {
		if !fn(k, w) {
			return
		}
	}
}

func (m *elementMap[K, W]) size() int {
	return len(m.present)
}
