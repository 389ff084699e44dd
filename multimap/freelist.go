package multimap

// freeList is the doubly-linked, FIFO-ordered list of unreferenced,
// non-sticky, registered elements (spec invariant I3). It is intrusive: the
// prev/next links live on the element itself (see element.go), so pushBack
// and remove never allocate, matching the "no allocation on remove"
// requirement in the design. Oldest entry sits at the head; new entries are
// appended at the tail.
type freeList[IDKey, NameKey, AuxKey comparable, E Entity[IDKey, NameKey, AuxKey]] struct {
	head, tail *element[IDKey, NameKey, AuxKey, E]
	length     int
}

// pushBack appends w, the most-recently-freed element, to the tail.
func (l *freeList[IDKey, NameKey, AuxKey, E]) pushBack(w *element[IDKey, NameKey, AuxKey, E]) {
	w.flPrev, w.flNext = l.tail, nil
	if l.tail != nil {
		l.tail.flNext = w
	} else {
		l.head = w
	}
	l.tail = w
	w.onFreeList = true
	l.length++
}

// remove unlinks w from the free list. w must currently be on the list.
func (l *freeList[IDKey, NameKey, AuxKey, E]) remove(w *element[IDKey, NameKey, AuxKey, E]) {
	if w.flPrev != nil {
		w.flPrev.flNext = w.flNext
	} else {
		l.head = w.flNext
	}
	if w.flNext != nil {
		w.flNext.flPrev = w.flPrev
	} else {
		l.tail = w.flPrev
	}
	w.flPrev, w.flNext = nil, nil
	w.onFreeList = false
	l.length--
}

// lru returns the least-recently-freed element (the head), or nil if the
// list is empty. It does not remove it.
func (l *freeList[IDKey, NameKey, AuxKey, E]) lru() *element[IDKey, NameKey, AuxKey, E] {
	return l.head
}

func (l *freeList[IDKey, NameKey, AuxKey, E]) len() int {
	return l.length
}
