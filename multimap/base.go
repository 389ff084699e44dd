package multimap

// base owns the four element maps — one per key kind (id, name, aux) plus
// the reverse map keyed by entity-snapshot identity — and provides atomic
// registration/deregistration of an element across all of its non-null
// keys. "Atomic" here means only "while the caller holds the cache lock":
// base itself does no locking of its own.
type base[IDKey, NameKey, AuxKey comparable, E Entity[IDKey, NameKey, AuxKey]] struct {
	byID   elementMap[IDKey, element[IDKey, NameKey, AuxKey, E]]
	byName elementMap[NameKey, element[IDKey, NameKey, AuxKey, E]]
	byAux  elementMap[AuxKey, element[IDKey, NameKey, AuxKey, E]]
	bySnap elementMap[E, element[IDKey, NameKey, AuxKey, E]]

	// size tracks len(bySnap.present) incrementally, updated exactly at
	// addSingleElement/removeSingleElement, mirroring the original
	// source's m_size bookkeeping rather than recomputing len() on every
	// capacity check.
	size int
}

func newBase[IDKey, NameKey, AuxKey comparable, E Entity[IDKey, NameKey, AuxKey]]() base[IDKey, NameKey, AuxKey, E] {
	return base[IDKey, NameKey, AuxKey, E]{
		byID:   newElementMap[IDKey, element[IDKey, NameKey, AuxKey, E]](),
		byName: newElementMap[NameKey, element[IDKey, NameKey, AuxKey, E]](),
		byAux:  newElementMap[AuxKey, element[IDKey, NameKey, AuxKey, E]](),
		bySnap: newElementMap[E, element[IDKey, NameKey, AuxKey, E]](),
	}
}

// addSingleElement registers w under every non-null key it carries, plus
// its snapshot identity. Precondition: none of those keys are already
// present (checked by elementMap.insert).
func (b *base[IDKey, NameKey, AuxKey, E]) addSingleElement(w *element[IDKey, NameKey, AuxKey, E]) {
	invariant(w.anyKeyPresent(), "addSingleElement: element has no derived keys")

	if w.hasID {
		b.byID.insert(w.idKey, w)
	}
	if w.hasName {
		b.byName.insert(w.nameKey, w)
	}
	if w.hasAux {
		b.byAux.insert(w.auxKey, w)
	}
	b.bySnap.insert(w.object, w)
	w.registered = true
	b.size++
}

// removeSingleElement deregisters w from every map it was registered under.
// Preconditions (checked by assertion): each non-null key is present and
// not missed.
func (b *base[IDKey, NameKey, AuxKey, E]) removeSingleElement(w *element[IDKey, NameKey, AuxKey, E]) {
	if w.hasID {
		b.byID.remove(w.idKey)
	}
	if w.hasName {
		b.byName.remove(w.nameKey)
	}
	if w.hasAux {
		b.byAux.remove(w.auxKey)
	}
	b.bySnap.remove(w.object)
	w.registered = false
	b.size--
}
