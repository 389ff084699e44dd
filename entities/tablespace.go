package entities

import "github.com/dbmeta/metacache/multimap"

// TablespaceID is a tablespace's numeric id (InnoDB's space_id).
type TablespaceID int64

// TablespaceName is a tablespace's logical name.
type TablespaceName string

// DataFilePath is the on-disk path backing a tablespace; a tablespace with
// a data file carries all three key kinds, since looking a tablespace up by
// its backing file is as common as looking it up by id or name.
type DataFilePath string

// Tablespace is an immutable snapshot of one tablespace's metadata.
type Tablespace struct {
	ID        TablespaceID
	Name      TablespaceName
	DataFile  DataFilePath
	Encrypted bool
}

// IDKey returns the tablespace's numeric id.
func (t *Tablespace) IDKey() (TablespaceID, bool) { return t.ID, true }

// NameKey returns the tablespace's logical name.
func (t *Tablespace) NameKey() (TablespaceName, bool) { return t.Name, true }

// AuxKey returns the tablespace's backing data file path.
func (t *Tablespace) AuxKey() (DataFilePath, bool) {
	if t.DataFile == "" {
		return "", false
	}
	return t.DataFile, true
}

// TablespaceCache memoizes Tablespace snapshots indexed by numeric id, by
// logical name, and by backing data file path.
type TablespaceCache = multimap.Cache[TablespaceID, TablespaceName, DataFilePath, *Tablespace]

// TablespaceHandle is the pinned reference returned by TablespaceCache's
// Get/Put.
type TablespaceHandle = multimap.Handle[TablespaceID, TablespaceName, DataFilePath, *Tablespace]

// NewTablespaceCache builds an empty TablespaceCache.
func NewTablespaceCache(opts ...multimap.Option) *TablespaceCache {
	return multimap.New[TablespaceID, TablespaceName, DataFilePath, *Tablespace](opts...)
}
