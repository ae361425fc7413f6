package database

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMigratorTest(t *testing.T) (*Migrator, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	fsys := fstest.MapFS{
		"m/1_create_things.up.sql":   {Data: []byte("CREATE TABLE things (id NUMBER);\n")},
		"m/1_create_things.down.sql": {Data: []byte("DROP TABLE things")},
		"m/2_index_things.up.sql":    {Data: []byte("CREATE INDEX idx_things ON things (id)")},
		"m/2_index_things.down.sql":  {Data: []byte("DROP INDEX idx_things")},
	}
	m, err := NewMigrator(sqlx.NewDb(mockDB, "sqlmock"), fsys, "m")
	require.NoError(t, err)
	return m, mock
}

func expectVersion(mock sqlmock.Sqlmock, tableExists bool, rows *sqlmock.Rows) {
	count := 0
	if tableExists {
		count = 1
	}
	mock.ExpectQuery(regexp.QuoteMeta(migrationsTableExists)).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(count))
	if !tableExists {
		mock.ExpectExec(regexp.QuoteMeta(createMigrationsTable)).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectQuery(regexp.QuoteMeta(selectLatestVersion)).WillReturnRows(rows)
}

func TestMigrator_UpFromEmpty(t *testing.T) {
	m, mock := setupMigratorTest(t)
	expectVersion(mock, false, sqlmock.NewRows([]string{"VERSION", "DIRTY"}))

	for _, step := range []struct {
		version int64
		stmt    string
	}{
		{1, "CREATE TABLE things (id NUMBER)"},
		{2, "CREATE INDEX idx_things ON things (id)"},
	} {
		mock.ExpectExec(regexp.QuoteMeta(insertVersion)).WithArgs(step.version).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("^" + regexp.QuoteMeta(step.stmt) + "$").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta(markClean)).WithArgs(step.version).WillReturnResult(sqlmock.NewResult(0, 1))
	}

	applied, err := m.Up(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_UpSkipsApplied(t *testing.T) {
	m, mock := setupMigratorTest(t)
	expectVersion(mock, true, sqlmock.NewRows([]string{"VERSION", "DIRTY"}).AddRow(2, 0))

	applied, err := m.Up(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_UpRefusesDirty(t *testing.T) {
	m, mock := setupMigratorTest(t)
	expectVersion(mock, true, sqlmock.NewRows([]string{"VERSION", "DIRTY"}).AddRow(1, 1))

	_, err := m.Up(context.Background())
	assert.True(t, errors.Is(err, ErrDirty))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_UpStopsOnFailure(t *testing.T) {
	m, mock := setupMigratorTest(t)
	expectVersion(mock, true, sqlmock.NewRows([]string{"VERSION", "DIRTY"}).AddRow(1, 0))
	mock.ExpectExec(regexp.QuoteMeta(insertVersion)).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX idx_things")).WillReturnError(errors.New("ORA-00955: name is already used"))

	applied, err := m.Up(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_DownOneStep(t *testing.T) {
	m, mock := setupMigratorTest(t)
	expectVersion(mock, true, sqlmock.NewRows([]string{"VERSION", "DIRTY"}).AddRow(2, 0))
	mock.ExpectExec(regexp.QuoteMeta(markDirty)).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DROP INDEX idx_things")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(deleteVersion)).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))

	reverted, err := m.Down(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, reverted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmbeddedMigrations(t *testing.T) {
	m, err := NewEmbeddedMigrator(nil)
	require.NoError(t, err)
	defer m.Close()

	first, err := m.src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	count := 0
	for v, err := first, error(nil); err == nil; v, err = m.src.Next(v) {
		body, _, rerr := m.src.ReadUp(v)
		require.NoError(t, rerr)
		stmt, rerr := readStatement(body)
		require.NoError(t, rerr)
		assert.NotContains(t, stmt, ";", "migration %d must hold a single statement", v)
		count++
	}
	assert.Equal(t, 3, count)
}
