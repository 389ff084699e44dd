package entities

import "github.com/dbmeta/metacache/multimap"

// CharsetID is a character set's numeric id, as stored in table/column
// metadata.
type CharsetID int64

// CharsetName is a character set's canonical name (e.g. "utf8mb4").
type CharsetName string

// Charset is an immutable snapshot of one character set's metadata.
type Charset struct {
	ID               CharsetID
	Name             CharsetName
	DefaultCollation CollationID
	MaxLenBytes      int
}

// IDKey returns the charset's numeric id.
func (c *Charset) IDKey() (CharsetID, bool) { return c.ID, true }

// NameKey returns the charset's canonical name.
func (c *Charset) NameKey() (CharsetName, bool) { return c.Name, true }

// AuxKey is unused for charsets.
func (c *Charset) AuxKey() (multimap.NoAuxKey, bool) { return multimap.NoAuxKey{}, false }

// CharsetCache memoizes Charset snapshots indexed by numeric id and by
// canonical name.
type CharsetCache = multimap.Cache[CharsetID, CharsetName, multimap.NoAuxKey, *Charset]

// CharsetHandle is the pinned reference returned by CharsetCache's Get/Put.
type CharsetHandle = multimap.Handle[CharsetID, CharsetName, multimap.NoAuxKey, *Charset]

// NewCharsetCache builds an empty CharsetCache.
func NewCharsetCache(opts ...multimap.Option) *CharsetCache {
	return multimap.New[CharsetID, CharsetName, multimap.NoAuxKey, *Charset](opts...)
}
