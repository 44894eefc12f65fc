package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/prosync/prosync-api/internal/dto"
	"github.com/stretchr/testify/require"
)

func TestProjectHandler_CreateAndGetBySlug(t *testing.T) {
	env := setupTestEnv(t)
	_, ownerToken := env.signupUser(t, "owner")

	project := createProject(t, env, ownerToken, "My App!")
	require.Equal(t, "my-app", project.Slug)

	w := env.request(t, http.MethodGet, "/api/projects/slug/my-app", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var found dto.ProjectDTO
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["project"], &found))
	require.Equal(t, project.ID, found.ID)
	require.Equal(t, "owner", found.OwnerName)
}

func TestProjectHandler_Mine(t *testing.T) {
	env := setupTestEnv(t)
	_, ownerToken := env.signupUser(t, "owner")
	_, otherToken := env.signupUser(t, "other")

	createProject(t, env, ownerToken, "Widget")
	createProject(t, env, ownerToken, "Gadget")
	createProject(t, env, otherToken, "Unrelated")

	w := env.request(t, http.MethodGet, "/api/projects/mine", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var projects []dto.ProjectDTO
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["projects"], &projects))
	require.Len(t, projects, 2)
}

func TestProjectHandler_UpdateOwnerOnly(t *testing.T) {
	env := setupTestEnv(t)
	_, ownerToken := env.signupUser(t, "owner")
	_, strangerToken := env.signupUser(t, "stranger")

	project := createProject(t, env, ownerToken, "Widget")
	path := fmt.Sprintf("/api/projects/%d", project.ID)

	w := env.request(t, http.MethodPatch, path, strangerToken, map[string]any{"name": "Stolen"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodPatch, path, ownerToken, map[string]any{
		"name":      "Widget 2",
		"is_pinned": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated dto.ProjectDTO
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["project"], &updated))
	require.Equal(t, "Widget 2", updated.Name)
	require.True(t, updated.IsPinned)
	require.Equal(t, project.Slug, updated.Slug)
}

func TestProjectHandler_SaveToggleAndList(t *testing.T) {
	env := setupTestEnv(t)
	_, ownerToken := env.signupUser(t, "owner")
	_, saverToken := env.signupUser(t, "saver")

	project := createProject(t, env, ownerToken, "Widget")
	path := fmt.Sprintf("/api/projects/%d/save", project.ID)

	w := env.request(t, http.MethodPost, path, saverToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var saved bool
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["saved"], &saved))
	require.True(t, saved)

	w = env.request(t, http.MethodGet, "/api/projects/saved", saverToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var projects []dto.ProjectDTO
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["projects"], &projects))
	require.Len(t, projects, 1)
	require.Equal(t, project.ID, projects[0].ID)

	w = env.request(t, http.MethodPost, path, saverToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["saved"], &saved))
	require.False(t, saved)
}

func TestProjectHandler_SearchExcludesPrivate(t *testing.T) {
	env := setupTestEnv(t)
	_, ownerToken := env.signupUser(t, "owner")

	createProject(t, env, ownerToken, "Public Widget")

	w := env.request(t, http.MethodPost, "/api/projects", ownerToken, map[string]any{
		"name":       "Private Widget",
		"is_private": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodGet, "/api/projects/search?q=widget", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var projects []dto.ProjectDTO
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["projects"], &projects))
	require.Len(t, projects, 1)
	require.Equal(t, "Public Widget", projects[0].Name)
}

func TestProjectHandler_AddCollaboratorOwnerOnly(t *testing.T) {
	env := setupTestEnv(t)
	_, ownerToken := env.signupUser(t, "owner")
	guest, guestToken := env.signupUser(t, "guest")

	project := createProject(t, env, ownerToken, "Widget")
	path := fmt.Sprintf("/api/projects/%d/collaborators", project.ID)

	// Only the owner may attach collaborators directly
	w := env.request(t, http.MethodPost, path, guestToken, map[string]any{"user_id": guest.ID})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodPost, path, ownerToken, map[string]any{"user_id": guest.ID})
	require.Equal(t, http.StatusOK, w.Code)
	var added bool
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["added"], &added))
	require.True(t, added)

	// Adding an existing collaborator is not an error
	w = env.request(t, http.MethodPost, path, ownerToken, map[string]any{"user_id": guest.ID})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["added"], &added))
	require.False(t, added)

	w = env.request(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var collaborators []dto.CollaborationDTO
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["collaborators"], &collaborators))
	require.Len(t, collaborators, 1)
	require.Equal(t, "guest", collaborators[0].Username)
	require.Equal(t, "Collaborator", collaborators[0].Role)

	w = env.request(t, http.MethodPost, path, ownerToken, map[string]any{"user_id": 999})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_Delete(t *testing.T) {
	env := setupTestEnv(t)
	_, ownerToken := env.signupUser(t, "owner")

	project := createProject(t, env, ownerToken, "Ephemeral")
	path := fmt.Sprintf("/api/projects/%d", project.ID)

	w := env.request(t, http.MethodDelete, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
