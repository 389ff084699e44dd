package multimap

// Entity is the contract every cached payload type must satisfy. An entity
// exposes up to three derived keys of distinct kinds; a kind whose key is
// absent (the bool return is false) is simply never indexed under that map.
// The entity's own identity — its pointer value, since E is required to be
// comparable and is conventionally a pointer type — serves as the fourth,
// always-present lookup key (the "snapshot" key).
//
// IDKey is the primary key and is expected to always be present in
// practice; NameKey and AuxKey are secondary/tertiary and may be absent.
type Entity[IDKey, NameKey, AuxKey comparable] interface {
	comparable

	IDKey() (IDKey, bool)
	NameKey() (NameKey, bool)
	AuxKey() (AuxKey, bool)
}

// NoAuxKey is used to instantiate the AuxKey type parameter for entity kinds
// that never carry a tertiary key. Its zero value is its only value, so it
// is always "present" as a key when returned, which is why entities that
// don't use it must always return false alongside it.
type NoAuxKey struct{}

// Destroyable is implemented by entities or wrapper payloads that hold
// resources beyond GC-managed memory and need an explicit release once the
// cache lock has been dropped. Types that don't implement it are left to
// the garbage collector, same as any other Go value.
type Destroyable interface {
	Destroy()
}

// destroy runs obj's cleanup if obj implements Destroyable and does nothing
// otherwise. The cache only calls it from functions queued with
// autolock.Guard.Defer, so it runs after the cache lock has been released.
func destroy[T any](obj T) {
	if d, ok := any(obj).(Destroyable); ok {
		d.Destroy()
	}
}
