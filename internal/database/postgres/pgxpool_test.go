package postgres

import (
	"context"
	"testing"

	"skillsift/internal/config"
	"skillsift/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		DBHost:     " db.internal ",
		DBPort:     "5432",
		DBName:     "skillsift",
		DBUser:     "sift",
		DBPassword: `p@ss word'\x`,
		DBSSLMode:  "disable",
	}

	dsn := DSN(cfg)
	assert.Equal(t, `host=db.internal port=5432 user=sift password='p@ss word\'\\x' dbname=skillsift sslmode=disable application_name=skillsift`, dsn)

	pcfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", pcfg.ConnConfig.Host)
	assert.Equal(t, `p@ss word'\x`, pcfg.ConnConfig.Password)
	assert.Equal(t, "skillsift", pcfg.ConnConfig.RuntimeParams["application_name"])
}

func TestDSN_OmitsEmptySettings(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{DBHost: "localhost", DBName: "skillsift"})
	assert.Equal(t, "host=localhost dbname=skillsift application_name=skillsift", dsn)
}

func TestPool_NilIsSafe(t *testing.T) {
	var p *Pool
	ctx := context.Background()

	assert.ErrorIs(t, p.Ping(ctx), database.ErrNilDB)
	_, err := p.Exec(ctx, "SELECT 1")
	assert.ErrorIs(t, err, database.ErrNilDB)
	_, err = p.Query(ctx, "SELECT 1")
	assert.ErrorIs(t, err, database.ErrNilDB)
	assert.ErrorIs(t, p.QueryRow(ctx, "SELECT 1").Scan(), database.ErrNilDB)
	_, err = p.Begin(ctx)
	assert.ErrorIs(t, err, database.ErrNilDB)
	assert.NoError(t, p.Close())
	assert.Nil(t, p.SQLDB())
}
