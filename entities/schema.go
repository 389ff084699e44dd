package entities

import "github.com/dbmeta/metacache/multimap"

// SchemaID is a schema's numeric id.
type SchemaID int64

// SchemaName is a schema's name.
type SchemaName string

// Schema is an immutable snapshot of one schema's metadata.
type Schema struct {
	ID             SchemaID
	Name           SchemaName
	DefaultCharset CharsetID
}

// IDKey returns the schema's numeric id.
func (s *Schema) IDKey() (SchemaID, bool) { return s.ID, true }

// NameKey returns the schema's name.
func (s *Schema) NameKey() (SchemaName, bool) { return s.Name, true }

// AuxKey is unused for schemas.
func (s *Schema) AuxKey() (multimap.NoAuxKey, bool) { return multimap.NoAuxKey{}, false }

// SchemaCache memoizes Schema snapshots indexed by numeric id and by name.
type SchemaCache = multimap.Cache[SchemaID, SchemaName, multimap.NoAuxKey, *Schema]

// SchemaHandle is the pinned reference returned by SchemaCache's Get/Put.
type SchemaHandle = multimap.Handle[SchemaID, SchemaName, multimap.NoAuxKey, *Schema]

// NewSchemaCache builds an empty SchemaCache.
func NewSchemaCache(opts ...multimap.Option) *SchemaCache {
	return multimap.New[SchemaID, SchemaName, multimap.NoAuxKey, *Schema](opts...)
}
