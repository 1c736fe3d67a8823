package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	execs      []string
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	t.execs = append(t.execs, query)
	return 1, nil
}

func (t *fakeTx) Query(context.Context, string, ...any) (Rows, error) { return nil, ErrNilDB }

func (t *fakeTx) QueryRow(context.Context, string, ...any) Row { return nil }

func (t *fakeTx) Commit(context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeDB struct {
	tx       *fakeTx
	beginErr error
}

func (d *fakeDB) Exec(context.Context, string, ...any) (int64, error) { return 0, nil }
func (d *fakeDB) Query(context.Context, string, ...any) (Rows, error) { return nil, ErrNilDB }
func (d *fakeDB) QueryRow(context.Context, string, ...any) Row        { return nil }
func (d *fakeDB) Ping(context.Context) error                          { return nil }
func (d *fakeDB) Close() error                                        { return nil }
func (d *fakeDB) SQLDB() *sql.DB                                      { return nil }
func (d *fakeDB) Begin(context.Context) (Tx, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	return d.tx, nil
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}

	err := WithTx(context.Background(), db, func(tx Tx) error {
		_, err := tx.Exec(context.Background(), "DELETE FROM analyses")
		return err
	})
	require.NoError(t, err)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
	assert.Equal(t, []string{"DELETE FROM analyses"}, db.tx.execs)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	boom := errors.New("boom")

	err := WithTx(context.Background(), db, func(Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, db.tx.committed)
	assert.True(t, db.tx.rolledBack)
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}

	assert.PanicsWithValue(t, "bad row", func() {
		_ = WithTx(context.Background(), db, func(Tx) error { panic("bad row") })
	})
	assert.True(t, db.tx.rolledBack)
}

func TestWithTx_BeginAndCommitErrors(t *testing.T) {
	boom := errors.New("pool closed")
	err := WithTx(context.Background(), &fakeDB{beginErr: boom}, func(Tx) error { return nil })
	assert.ErrorIs(t, err, boom)

	db := &fakeDB{tx: &fakeTx{commitErr: boom}}
	err = WithTx(context.Background(), db, func(Tx) error { return nil })
	assert.ErrorIs(t, err, boom)
	assert.True(t, db.tx.rolledBack)

	assert.ErrorIs(t, WithTx(context.Background(), nil, func(Tx) error { return nil }), ErrNilDB)
}
