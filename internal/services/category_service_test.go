package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tasktrack/internal/models"
	"tasktrack/internal/repository"
)

func setupCategoryService(t *testing.T) (*CategoryService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Category{}, &models.Task{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewCategoryService(repository.NewCategoryRepository(db)), db
}

func TestCategoryService_Create(t *testing.T) {
	svc, _ := setupCategoryService(t)

	category, err := svc.Create("  Work  ")
	require.NoError(t, err)
	assert.NotZero(t, category.ID)
	assert.Equal(t, "Work", category.Name)

	_, err = svc.Create("")
	assert.ErrorIs(t, err, ErrCategoryNameRequired)

	_, err = svc.Create("Work")
	assert.ErrorIs(t, err, ErrCategoryExists)
}

func TestCategoryService_List(t *testing.T) {
	svc, _ := setupCategoryService(t)

	_, err := svc.Create("Work")
	require.NoError(t, err)
	_, err = svc.Create("Health")
	require.NoError(t, err)

	categories, err := svc.List()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Health", categories[0].Name)
	assert.Equal(t, "Work", categories[1].Name)
}

func TestCategoryService_Delete_SetNullsTasks(t *testing.T) {
	svc, db := setupCategoryService(t)

	category, err := svc.Create("Work")
	require.NoError(t, err)

	user := &models.User{Username: "alice", PasswordHash: "hashedpassword"}
	db.Create(user)

	task := &models.Task{Title: "Report", OwnerID: user.ID, CategoryID: &category.ID}
	db.Create(task)

	require.NoError(t, svc.Delete(category.ID))

	var stored models.Task
	db.First(&stored, task.ID)
	assert.Nil(t, stored.CategoryID)

	err = svc.Delete(category.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
