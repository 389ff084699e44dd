package entities

import "github.com/dbmeta/metacache/multimap"

// CollationID is a collation's numeric id.
type CollationID int64

// CollationName is a collation's canonical name (e.g. "utf8mb4_general_ci").
type CollationName string

// DefaultForCharset is the tertiary key carried only by the collation that
// is the default for a given charset, letting callers look up "the default
// collation for charset X" directly instead of scanning.
type DefaultForCharset struct {
	Charset CharsetID
}

// Collation is an immutable snapshot of one collation's metadata.
type Collation struct {
	ID        CollationID
	Name      CollationName
	Charset   CharsetID
	IsDefault bool
}

// IDKey returns the collation's numeric id.
func (c *Collation) IDKey() (CollationID, bool) { return c.ID, true }

// NameKey returns the collation's canonical name.
func (c *Collation) NameKey() (CollationName, bool) { return c.Name, true }

// AuxKey returns the charset it defaults for, but only when it actually is
// that charset's default collation — at most one collation per charset
// carries this key, so it stays a valid unique index.
func (c *Collation) AuxKey() (DefaultForCharset, bool) {
	if !c.IsDefault {
		return DefaultForCharset{}, false
	}
	return DefaultForCharset{Charset: c.Charset}, true
}

// CollationCache memoizes Collation snapshots indexed by numeric id, by
// canonical name, and — for default collations only — by their charset.
type CollationCache = multimap.Cache[CollationID, CollationName, DefaultForCharset, *Collation]

// CollationHandle is the pinned reference returned by CollationCache's
// Get/Put.
type CollationHandle = multimap.Handle[CollationID, CollationName, DefaultForCharset, *Collation]

// NewCollationCache builds an empty CollationCache.
func NewCollationCache(opts ...multimap.Option) *CollationCache {
	return multimap.New[CollationID, CollationName, DefaultForCharset, *Collation](opts...)
}
