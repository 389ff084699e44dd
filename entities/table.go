// Package entities instantiates multimap.Cache for the metadata entity
// kinds a database server memoizes: abstract tables, charsets, collations,
// schemas, and tablespaces. Each kind is a small immutable value type plus
// a typed Cache alias and constructor, so callers never spell out the
// generic instantiation themselves.
package entities

import "github.com/dbmeta/metacache/multimap"

// TableID is a table's numeric primary key.
type TableID int64

// TableName identifies a table by its schema-qualified name.
type TableName struct {
	Schema string
	Name   string
}

// Table is an immutable snapshot of one table's metadata. Once accepted by
// a TableCache, it must not be mutated by the caller — replace it via
// Cache.Replace instead.
type Table struct {
	ID     TableID
	Schema string
	Name   string
	Engine string
}

// IDKey returns the table's numeric id.
func (t *Table) IDKey() (TableID, bool) { return t.ID, true }

// NameKey returns the table's schema-qualified name.
func (t *Table) NameKey() (TableName, bool) {
	return TableName{Schema: t.Schema, Name: t.Name}, true
}

// AuxKey is unused for tables; they carry no tertiary key.
func (t *Table) AuxKey() (multimap.NoAuxKey, bool) { return multimap.NoAuxKey{}, false }

// TableCache memoizes Table snapshots indexed by numeric id and by
// schema-qualified name.
type TableCache = multimap.Cache[TableID, TableName, multimap.NoAuxKey, *Table]

// TableHandle is the pinned reference returned by TableCache's Get/Put.
type TableHandle = multimap.Handle[TableID, TableName, multimap.NoAuxKey, *Table]

// NewTableCache builds an empty TableCache.
func NewTableCache(opts ...multimap.Option) *TableCache {
	return multimap.New[TableID, TableName, multimap.NoAuxKey, *Table](opts...)
}
