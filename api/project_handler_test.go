package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/myfolio-api/models"
	"github.com/rpupo63/myfolio-api/testutil"
)

func strPtr(s string) *string { return &s }

func TestGetAllProjects(t *testing.T) {
	env := newTestEnv(t)
	testutil.InsertRawProject(t, env.db, "gallery", strPtr(`["https://cdn/a.png","https://cdn/b.png"]`))
	testutil.InsertRawProject(t, env.db, "malformed", strPtr(`[not json`))
	testutil.InsertRawProject(t, env.db, "absent", nil)

	w := env.do(httptest.NewRequest(http.MethodGet, "/projects", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got []ProjectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 3)

	assert.Equal(t, "gallery", got[0].Title)
	assert.Equal(t, models.ImageList{"https://cdn/a.png", "https://cdn/b.png"}, got[0].Images)
	assert.Equal(t, "Go, PostgreSQL", *got[0].TechStack)
	assert.Equal(t, models.ImageList{}, got[1].Images)
	assert.Equal(t, models.ImageList{}, got[2].Images)
	assert.Nil(t, got[2].DemoLink)
}

func TestGetAllProjectsShape(t *testing.T) {
	env := newTestEnv(t)
	testutil.InsertRawProject(t, env.db, "absent", nil)

	w := env.do(httptest.NewRequest(http.MethodGet, "/projects", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	require.Len(t, raw, 1)

	keys := make([]string, 0, len(raw[0]))
	for k := range raw[0] {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"id", "title", "description", "tech_stack", "github_link", "demo_link", "images"}, keys)
	assert.Equal(t, []interface{}{}, raw[0]["images"])
}

func TestGetAllProjectsEmpty(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(httptest.NewRequest(http.MethodGet, "/projects", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

type failingProjectLister struct{}

func (failingProjectLister) FindAll(ctx context.Context) ([]*models.Project, error) {
	return nil, errors.New("relation \"projects\" does not exist")
}

func TestGetAllProjectsDatabaseError(t *testing.T) {
	h := newProjectHandler(failingProjectLister{})

	w := httptest.NewRecorder()
	h.getAllProjects()(w, httptest.NewRequest(http.MethodGet, "/projects", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"error"`)
	assert.NotContains(t, w.Body.String(), "relation")
}
