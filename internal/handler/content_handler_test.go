package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gopikrishna-M-A/facfolio/internal/model"
)

func TestResearchEndpoints(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.register(t, "Jane", "jane@example.edu", "hunter2hunter2")

	rec := env.do(t, http.MethodPost, "/api/research", map[string]interface{}{
		"title":  "Consensus under churn",
		"points": []string{"liveness", "safety"},
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created model.Research
	decode(t, rec, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, []string{"liveness", "safety"}, created.Points)
	assert.False(t, created.IsVisible)

	rec = env.do(t, http.MethodPatch, "/api/research/"+created.ID, map[string]interface{}{
		"isVisible": true,
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated model.Research
	decode(t, rec, &updated)
	assert.True(t, updated.IsVisible)
	assert.Equal(t, "Consensus under churn", updated.Title)

	rec = env.do(t, http.MethodGet, "/api/research?userId="+created.UserID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []model.Research
	decode(t, rec, &list)
	assert.Len(t, list, 1)

	rec = env.do(t, http.MethodDelete, "/api/research/"+created.ID, nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodGet, "/api/research/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResearchMutationsRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/research", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestContentOwnershipEnforced(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "Owner", "owner@example.edu", "hunter2hunter2")
	intruder := env.register(t, "Intruder", "intruder@example.edu", "hunter2hunter2")

	rec := env.do(t, http.MethodPost, "/api/blogs", map[string]string{
		"title": "My post",
	}, owner)
	require.Equal(t, http.StatusCreated, rec.Code)
	var blog model.Blog
	decode(t, rec, &blog)

	rec = env.do(t, http.MethodPatch, "/api/blogs/"+blog.ID, map[string]string{
		"title": "Hijacked",
	}, intruder)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/blogs/"+blog.ID, nil, intruder)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Unchanged for the owner.
	rec = env.do(t, http.MethodGet, "/api/blogs/"+blog.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Blog
	decode(t, rec, &got)
	assert.Equal(t, "My post", got.Title)
}

func TestProjectRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.register(t, "Jane", "jane@example.edu", "hunter2hunter2")

	rec := env.do(t, http.MethodPost, "/api/projects", map[string]interface{}{
		"title":         "Distributed tracing",
		"fundingAmount": 120000.50,
		"tags":          []string{"observability"},
		"publications": []map[string]interface{}{
			{"title": "Paper One", "authors": []string{"Jane"}, "year": 2025},
		},
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var project model.Project
	decode(t, rec, &project)
	assert.Equal(t, 120000.50, project.FundingAmount)
	require.Len(t, project.Publications, 1)
	assert.Equal(t, "Paper One", project.Publications[0].Title)

	// PUT-style update: the body replaces the document.
	rec = env.do(t, http.MethodPatch, "/api/projects/"+project.ID, map[string]interface{}{
		"title":     "Distributed tracing (funded)",
		"isVisible": true,
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated model.Project
	decode(t, rec, &updated)
	assert.Equal(t, "Distributed tracing (funded)", updated.Title)
	assert.Empty(t, updated.Tags, "replacement semantics drop omitted fields")
}

func TestHomeAndAboutEndpoints(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.register(t, "Jane", "jane@example.edu", "hunter2hunter2")

	rec := env.do(t, http.MethodGet, "/api/me", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var me model.User
	decode(t, rec, &me)

	// Sign-up already provisioned a Home; a second POST conflicts.
	rec = env.do(t, http.MethodPost, "/api/home", map[string]string{}, cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/home?userId="+me.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var homes []model.Home
	decode(t, rec, &homes)
	require.Len(t, homes, 1)

	rec = env.do(t, http.MethodPatch, "/api/home/"+homes[0].ID, map[string]string{
		"ctaheading": "Welcome to my lab",
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var home model.Home
	decode(t, rec, &home)
	assert.Equal(t, "Welcome to my lab", home.CTAHeading)

	rec = env.do(t, http.MethodGet, "/api/about?userId="+me.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var abouts []model.About
	decode(t, rec, &abouts)
	require.Len(t, abouts, 1)

	rec = env.do(t, http.MethodPatch, "/api/about/"+abouts[0].ID, map[string]interface{}{
		"userTag":  "Professor",
		"interest": []string{"compilers"},
		"education": []map[string]interface{}{
			{"degree": "PhD", "school": "MIT", "year": 2012},
		},
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var about model.About
	decode(t, rec, &about)
	assert.Equal(t, "Professor", about.UserTag)
	assert.Equal(t, []string{"compilers"}, about.Interests)
	require.Len(t, about.Education, 1)
	assert.Equal(t, "MIT", about.Education[0].School)
}
