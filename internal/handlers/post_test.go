package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/prosync/prosync-api/internal/dto"
	"github.com/prosync/prosync-api/internal/models"
	"github.com/stretchr/testify/require"
)

func createPost(t *testing.T, env testEnv, bearer, content string) dto.PostDTO {
	t.Helper()

	w := env.request(t, http.MethodPost, "/api/posts", bearer, map[string]any{
		"content": content,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var post dto.PostDTO
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["post"], &post))
	return post
}

func TestPostHandler_CreateRequiresAuth(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/posts", "", map[string]any{"content": "hi"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostHandler_LikeToggle(t *testing.T) {
	env := setupTestEnv(t)
	author, authorToken := env.signupUser(t, "author")
	_, likerToken := env.signupUser(t, "liker")

	post := createPost(t, env, authorToken, "hello world")

	path := fmt.Sprintf("/api/posts/%d/like", post.ID)

	w := env.request(t, http.MethodPost, path, likerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var liked bool
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["liked"], &liked))
	require.True(t, liked)

	// The like count is reflected on reads
	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got dto.PostDTO
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["post"], &got))
	require.EqualValues(t, 1, got.LikeCount)

	// A second toggle removes the like
	w = env.request(t, http.MethodPost, path, likerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["liked"], &liked))
	require.False(t, liked)

	// The author got exactly one notification, from the first like
	var count int64
	require.NoError(t, env.db.Model(&models.Notification{}).
		Where("receiver_id = ?", author.ID).
		Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestPostHandler_ViewerMarkersOnGet(t *testing.T) {
	env := setupTestEnv(t)
	_, authorToken := env.signupUser(t, "author")
	_, readerToken := env.signupUser(t, "reader")

	post := createPost(t, env, authorToken, "hello world")
	path := fmt.Sprintf("/api/posts/%d", post.ID)

	w := env.request(t, http.MethodPost, path+"/like", readerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.request(t, http.MethodPost, path+"/save", readerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, path, readerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	var liked, saved bool
	require.NoError(t, json.Unmarshal(body["liked"], &liked))
	require.NoError(t, json.Unmarshal(body["saved"], &saved))
	require.True(t, liked)
	require.True(t, saved)

	// Anonymous viewers carry no markers
	w = env.request(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	require.NoError(t, json.Unmarshal(body["liked"], &liked))
	require.NoError(t, json.Unmarshal(body["saved"], &saved))
	require.False(t, liked)
	require.False(t, saved)
}

func TestPostHandler_ProjectPosts(t *testing.T) {
	env := setupTestEnv(t)
	_, ownerToken := env.signupUser(t, "owner")
	_, guestToken := env.signupUser(t, "guest")

	w := env.request(t, http.MethodPost, "/api/projects", ownerToken, map[string]any{
		"name": "Open",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var project dto.ProjectDTO
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["project"], &project))

	for _, content := range []string{"first", "second"} {
		w = env.request(t, http.MethodPost, "/api/posts", ownerToken, map[string]any{
			"content":    content,
			"project_id": project.ID,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/projects/%d/posts", project.ID), guestToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var posts []dto.PostDTO
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["posts"], &posts))
	require.Len(t, posts, 2)

	w = env.request(t, http.MethodGet, "/api/projects/999/posts", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostHandler_PrivateProjectPostHidden(t *testing.T) {
	env := setupTestEnv(t)
	_, authorToken := env.signupUser(t, "author")
	_, strangerToken := env.signupUser(t, "stranger")

	w := env.request(t, http.MethodPost, "/api/projects", authorToken, map[string]any{
		"name":       "Secret",
		"is_private": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var project dto.ProjectDTO
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["project"], &project))

	w = env.request(t, http.MethodPost, "/api/posts", authorToken, map[string]any{
		"content":    "work in progress",
		"project_id": project.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var post dto.PostDTO
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["post"], &post))

	path := fmt.Sprintf("/api/posts/%d", post.ID)

	w = env.request(t, http.MethodGet, path, authorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, path, strangerToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostHandler_CommentsFlow(t *testing.T) {
	env := setupTestEnv(t)
	_, authorToken := env.signupUser(t, "author")
	_, readerToken := env.signupUser(t, "reader")

	post := createPost(t, env, authorToken, "hello world")

	w := env.request(t, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", post.ID), readerToken, map[string]any{
		"text": "nice one",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/posts/%d/comments", post.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var comments []dto.CommentDTO
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["comments"], &comments))
	require.Len(t, comments, 1)
	require.Equal(t, "nice one", comments[0].Text)
	require.Equal(t, "reader", comments[0].Username)
}

func TestPostHandler_SavedList(t *testing.T) {
	env := setupTestEnv(t)
	_, authorToken := env.signupUser(t, "author")
	_, saverToken := env.signupUser(t, "saver")

	post := createPost(t, env, authorToken, "keep me")

	w := env.request(t, http.MethodPost, fmt.Sprintf("/api/posts/%d/save", post.ID), saverToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/posts/saved", saverToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var posts []dto.PostDTO
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["posts"], &posts))
	require.Len(t, posts, 1)
	require.Equal(t, post.ID, posts[0].ID)
}

func TestPostHandler_DeleteAuthorOnly(t *testing.T) {
	env := setupTestEnv(t)
	_, authorToken := env.signupUser(t, "author")
	_, strangerToken := env.signupUser(t, "stranger")

	post := createPost(t, env, authorToken, "ephemeral")
	path := fmt.Sprintf("/api/posts/%d", post.ID)

	w := env.request(t, http.MethodDelete, path, strangerToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodDelete, path, authorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, path, authorToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
