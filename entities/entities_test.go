package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableKeys(t *testing.T) {
	tbl := &Table{ID: 42, Schema: "world", Name: "city", Engine: "InnoDB"}

	id, ok := tbl.IDKey()
	require.True(t, ok)
	require.Equal(t, TableID(42), id)

	name, ok := tbl.NameKey()
	require.True(t, ok)
	require.Equal(t, TableName{Schema: "world", Name: "city"}, name)

	_, ok = tbl.AuxKey()
	require.False(t, ok, "tables carry no aux key")
}

func TestCharsetKeys(t *testing.T) {
	cs := &Charset{ID: 45, Name: "utf8mb4", MaxLenBytes: 4}

	id, ok := cs.IDKey()
	require.True(t, ok)
	require.Equal(t, CharsetID(45), id)

	name, ok := cs.NameKey()
	require.True(t, ok)
	require.Equal(t, CharsetName("utf8mb4"), name)

	_, ok = cs.AuxKey()
	require.False(t, ok)
}

func TestCollationAuxKeyOnlyForDefault(t *testing.T) {
	nonDefault := &Collation{ID: 1, Name: "utf8mb4_bin", Charset: 45, IsDefault: false}
	_, ok := nonDefault.AuxKey()
	require.False(t, ok, "a non-default collation must not carry the aux key")

	isDefault := &Collation{ID: 2, Name: "utf8mb4_general_ci", Charset: 45, IsDefault: true}
	aux, ok := isDefault.AuxKey()
	require.True(t, ok)
	require.Equal(t, DefaultForCharset{Charset: 45}, aux)
}

func TestSchemaKeys(t *testing.T) {
	s := &Schema{ID: 7, Name: "world", DefaultCharset: 45}

	id, ok := s.IDKey()
	require.True(t, ok)
	require.Equal(t, SchemaID(7), id)

	name, ok := s.NameKey()
	require.True(t, ok)
	require.Equal(t, SchemaName("world"), name)

	_, ok = s.AuxKey()
	require.False(t, ok)
}

func TestTablespaceAuxKeyRequiresDataFile(t *testing.T) {
	noFile := &Tablespace{ID: 1, Name: "innodb_system"}
	_, ok := noFile.AuxKey()
	require.False(t, ok, "an empty data file path must not be treated as a key")

	withFile := &Tablespace{ID: 2, Name: "world/city", DataFile: "/var/lib/mysql/world/city.ibd"}
	aux, ok := withFile.AuxKey()
	require.True(t, ok)
	require.Equal(t, DataFilePath("/var/lib/mysql/world/city.ibd"), aux)
}

func TestTableCacheRoundTrip(t *testing.T) {
	c := NewTableCache()

	needsLoad, w := c.GetByID(42)
	require.True(t, needsLoad)
	require.Nil(t, w)

	tbl := &Table{ID: 42, Schema: "world", Name: "city", Engine: "InnoDB"}
	w = c.PutByID(42, tbl)
	require.NotNil(t, w)
	require.Same(t, tbl, w.Object())

	needsLoad, byName := c.GetByName(TableName{Schema: "world", Name: "city"})
	require.False(t, needsLoad)
	require.Same(t, w, byName)

	c.Release(w)
	c.Release(byName)
}

func TestCollationCacheDefaultLookup(t *testing.T) {
	c := NewCollationCache()

	needsLoad, w := c.GetByAux(DefaultForCharset{Charset: 45})
	require.True(t, needsLoad)
	require.Nil(t, w)

	coll := &Collation{ID: 2, Name: "utf8mb4_general_ci", Charset: 45, IsDefault: true}
	w = c.PutByAux(DefaultForCharset{Charset: 45}, coll)
	require.NotNil(t, w)
	require.Same(t, coll, w.Object())
	c.Release(w)
}
