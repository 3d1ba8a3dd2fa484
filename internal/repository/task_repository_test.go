package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupMockDB wires GORM over a sqlmock connection so tests can assert the
// exact SQL the repository emits.
func setupMockDB(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return NewTaskRepository(db), mock
}

// The list ordering is a contract: open tasks before completed ones, oldest
// first within each group, id as the final tie-break. This pins the ORDER BY
// clause itself.
func TestListByOwnerOrderByClause(t *testing.T) {
	repo, mock := setupMockDB(t)

	taskRows := sqlmock.NewRows([]string{"id", "owner_id", "title", "completed", "created_at"}).
		AddRow(1, 7, "open task", false, time.Now())

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "tasks" WHERE owner_id = $1 ORDER BY completed ASC, created_at ASC, id ASC`,
	)).WithArgs(uint64(7)).WillReturnRows(taskRows)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "attachments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "task_id", "owner_id"}))

	tasks, err := repo.ListByOwner(7)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "open task", tasks[0].Title)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Owner scoping rides in the UPDATE itself: a mismatched owner touches zero
// rows and the repository reports that count back.
func TestUpdateOwnedScopesByOwner(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET .+ WHERE id = \$\d+ AND owner_id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	rows, err := repo.UpdateOwned(3, 99, map[string]interface{}{"completed": true})
	require.NoError(t, err)
	assert.Zero(t, rows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOwnedScopesByOwner(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "tasks" WHERE id = $1 AND owner_id = $2`)).
		WithArgs(uint64(3), uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	rows, err := repo.DeleteOwned(3, 99)
	require.NoError(t, err)
	assert.Zero(t, rows)

	assert.NoError(t, mock.ExpectationsWereMet())
}
