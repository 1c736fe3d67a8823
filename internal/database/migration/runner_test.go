package migration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"skillsift/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLoadMigrations_OrdersByVersion(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"V10__analyses_index.sql": "CREATE INDEX x ON analyses (created_at);",
		"V2__market.sql":          "  CREATE TABLE salary_ranges (id uuid);\n",
		"V1__init.sql":            "CREATE TABLE analyses (id uuid);",
		"README.md":               "not a migration",
		"v3__lowercase.sql":       "SELECT 1;",
	})

	migs, err := loadMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migs, 3)
	assert.Equal(t, []int64{1, 2, 10}, []int64{migs[0].Version, migs[1].Version, migs[2].Version})
	assert.Equal(t, "market", migs[1].Name)
	assert.Equal(t, "CREATE TABLE salary_ranges (id uuid);", migs[1].SQL)
	assert.Len(t, migs[0].Checksum, 64)
}

func TestLoadMigrations_Rejects(t *testing.T) {
	dir := writeFiles(t, map[string]string{"V1__a.sql": "SELECT 1;", "V01__b.sql": "SELECT 2;"})
	_, err := loadMigrations(dir)
	assert.ErrorContains(t, err, "duplicate migration version: 1")

	dir = writeFiles(t, map[string]string{"V1__empty.sql": "  \n"})
	_, err = loadMigrations(dir)
	assert.ErrorContains(t, err, "empty migration file")

	migs, err := loadMigrations(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, migs)
}

func TestRunner_NoMigrationFiles(t *testing.T) {
	_, _, err := Runner{Dir: t.TempDir()}.load()
	assert.ErrorIs(t, err, ErrNoMigrations)
}

func TestRunner_NilDB(t *testing.T) {
	_, err := Runner{}.Run(context.Background(), nil)
	assert.ErrorIs(t, err, database.ErrNilDB)
	_, err = Runner{}.Status(context.Background(), nil)
	assert.ErrorIs(t, err, database.ErrNilDB)
}

func TestVerifyChecksums(t *testing.T) {
	migs := []Migration{{Version: 1, Name: "init", Checksum: "aaa"}, {Version: 2, Name: "market", Checksum: "bbb"}}

	assert.NoError(t, verifyChecksums(migs, map[int64]appliedMigration{1: {Version: 1, Checksum: "aaa"}}))

	err := verifyChecksums(migs, map[int64]appliedMigration{2: {Version: 2, Checksum: "edited"}})
	assert.ErrorIs(t, err, ErrChecksumMismatch)
	assert.ErrorContains(t, err, "name=market")
}

func TestResolveDir(t *testing.T) {
	d, err := resolveDir(" /srv/migrations ")
	require.NoError(t, err)
	assert.Equal(t, "/srv/migrations", d)

	t.Setenv(EnvDir, "/opt/skillsift/migrations")
	d, err = resolveDir("")
	require.NoError(t, err)
	assert.Equal(t, "/opt/skillsift/migrations", d)

	t.Setenv(EnvDir, "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	tmp := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmp, DefaultDir), 0o755))
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	d, err = resolveDir("")
	require.NoError(t, err)
	assert.Equal(t, DefaultDir, d)
}
