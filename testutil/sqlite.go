// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/myfolio-api/models"
)

// OpenSQLite returns an isolated in-memory sqlite database with the projects and
// demo_projects tables created. It is closed when the test finishes.
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Project{}, &models.DemoProject{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// InsertRawProject stores a project with image_url written verbatim, bypassing ImageList.Value.
func InsertRawProject(t testing.TB, db *gorm.DB, title string, imageURL *string) uint {
	t.Helper()

	require.NoError(t, db.Exec(
		"INSERT INTO projects (title, description, tech_stack, github_link, demo_link, image_url) VALUES (?, ?, ?, ?, ?, ?)",
		title, title+" description", "Go, PostgreSQL", "https://github.com/example/"+title, nil, imageURL,
	).Error)

	var id uint
	require.NoError(t, db.Raw("SELECT id FROM projects WHERE title = ?", title).Scan(&id).Error)
	return id
}
