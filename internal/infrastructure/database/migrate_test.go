package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_Embedded(t *testing.T) {
	migrations, err := LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, "0001_create_users", migrations[0].Version)
	assert.Equal(t, "0002_create_blog_tables", migrations[1].Version)
	assert.Contains(t, migrations[1].SQL, "ON DELETE CASCADE")
}

func TestLoadMigrations_SortsAndSkipsNonSQL(t *testing.T) {
	fsys := fstest.MapFS{
		"m/0003_c.sql": {Data: []byte("C")},
		"m/0001_a.sql": {Data: []byte("A")},
		"m/README.md":  {Data: []byte("ignore")},
		"m/0002_b.sql": {Data: []byte("B")},
	}

	migrations, err := loadMigrations(fsys, "m")
	require.NoError(t, err)

	var versions []string
	for _, m := range migrations {
		versions = append(versions, m.Version)
	}
	assert.Equal(t, []string{"0001_a", "0002_b", "0003_c"}, versions)
}

func TestDSN(t *testing.T) {
	cfg := &DBConfig{Host: "db", Port: 5432, Username: "u", Password: "p@ss", DBName: "blog", SSLMode: "disable"}
	assert.Equal(t, "postgresql://u:p%40ss@db:5432/blog?sslmode=disable", cfg.DSN())
}

func TestBackoff(t *testing.T) {
	assert.Equal(t, int64(1), int64(backoff(1, 1)))
	assert.Equal(t, int64(4), int64(backoff(1, 3)))
	assert.Equal(t, int64(1), int64(backoff(1, 0)))
}

func TestPostgresDB_UninitializedPool(t *testing.T) {
	db := NewPostgresDB(&DBConfig{})
	assert.Error(t, db.Ping(t.Context()))
	_, err := db.Stats()
	assert.Error(t, err)
	db.Close()
}
