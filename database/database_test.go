package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/myfolio-api/database"
	"github.com/rpupo63/myfolio-api/models"
	"github.com/rpupo63/myfolio-api/testutil"
)

func strPtr(s string) *string { return &s }

func TestProjectRepoFindAllLenientImages(t *testing.T) {
	db := testutil.OpenSQLite(t)
	ctx := context.Background()

	testutil.InsertRawProject(t, db, "gallery", strPtr(`["https://cdn/1.png","https://cdn/2.png"]`))
	testutil.InsertRawProject(t, db, "broken", strPtr(`not json`))
	testutil.InsertRawProject(t, db, "bare", nil)

	projects, err := database.New(db).ProjectRepo().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)

	assert.Equal(t, "gallery", projects[0].Title)
	assert.Equal(t, models.ImageList{"https://cdn/1.png", "https://cdn/2.png"}, projects[0].ImageURL)
	assert.Equal(t, models.ImageList{}, projects[1].ImageURL)
	assert.Equal(t, models.ImageList{}, projects[2].ImageURL)
	assert.Nil(t, projects[2].DemoLink)
}

func TestDemoProjectRepoLifecycle(t *testing.T) {
	db := testutil.OpenSQLite(t)
	repo := database.New(db).DemoProjectRepo()
	ctx := context.Background()

	project := &models.DemoProject{Title: "Resume", Description: "My resume", DocURL: strPtr("https://cdn/uploads/resume.pdf")}
	require.NoError(t, repo.Add(ctx, project))
	require.NotZero(t, project.ID)

	found, err := repo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Resume", found.Title)
	assert.Equal(t, "https://cdn/uploads/resume.pdf", *found.DocURL)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, project.ID))

	found, err = repo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestDemoProjectRepoFindByIDMissing(t *testing.T) {
	db := testutil.OpenSQLite(t)

	found, err := database.New(db).DemoProjectRepo().FindByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestDatabasePing(t *testing.T) {
	db := testutil.OpenSQLite(t)
	assert.NoError(t, database.New(db).Ping(context.Background()))
}

func TestRepoHonoursCancelledContext(t *testing.T) {
	db := testutil.OpenSQLite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := database.New(db).DemoProjectRepo().FindAll(ctx)
	assert.Error(t, err)
}
