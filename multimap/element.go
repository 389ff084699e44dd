package multimap

// element is the cache's internal wrapper around one entity snapshot (the
// "W" of the design). Callers never see *element directly; they get it back
// from Get/Put and pass it to Release/Drop/Replace/SetSticky.
//
// Free-list links are embedded directly on the element rather than routed
// through container/list, so moving an element on and off the free list
// never allocates and the element is its own list node (spec invariant I3:
// a W is on the free list iff usage == 0 && !sticky && registered).
type element[IDKey, NameKey, AuxKey comparable, E Entity[IDKey, NameKey, AuxKey]] struct {
	object E
	usage  int
	sticky bool

	idKey   IDKey
	hasID   bool
	nameKey NameKey
	hasName bool
	auxKey  AuxKey
	hasAux  bool

	// free-list links, valid only while the element is linked in.
	flPrev, flNext *element[IDKey, NameKey, AuxKey, E]
	onFreeList     bool

	// registered is true once the element has keys installed in the
	// multi-map's present maps. Pooled and fresh-but-unregistered
	// elements both carry registered == false.
	registered bool
}

// newElement allocates a fresh, empty wrapper.
func newElement[IDKey, NameKey, AuxKey comparable, E Entity[IDKey, NameKey, AuxKey]]() *element[IDKey, NameKey, AuxKey, E] {
	return &element[IDKey, NameKey, AuxKey, E]{}
}

// reset clears a wrapper for reuse from the pool. Per invariant I5, pooled
// elements carry a null/zero object and no keys.
func (w *element[IDKey, NameKey, AuxKey, E]) reset() {
	var zeroE E
	var zeroID IDKey
	var zeroName NameKey
	var zeroAux AuxKey

	w.object = zeroE
	w.usage = 0
	w.sticky = false
	w.idKey, w.hasID = zeroID, false
	w.nameKey, w.hasName = zeroName, false
	w.auxKey, w.hasAux = zeroAux, false
	w.flPrev, w.flNext = nil, nil
	w.onFreeList = false
	w.registered = false
}

// installKeys regenerates the element's three derived keys from obj and
// installs obj as the wrapper's object. Called whenever the object changes
// (Put, Replace).
func (w *element[IDKey, NameKey, AuxKey, E]) installKeys(obj E) {
	w.object = obj
	w.idKey, w.hasID = obj.IDKey()
	w.nameKey, w.hasName = obj.NameKey()
	w.auxKey, w.hasAux = obj.AuxKey()
}

// anyKeyPresent reports whether at least one of the three derived keys is
// present. Put and addSingleElement panic when it is false.
func (w *element[IDKey, NameKey, AuxKey, E]) anyKeyPresent() bool {
	return w.hasID || w.hasName || w.hasAux
}

