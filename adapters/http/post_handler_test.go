package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postUC "github.com/khoahotran/devconnect/internal/application/usecase/post"
	"github.com/khoahotran/devconnect/internal/domain/user"
	"github.com/khoahotran/devconnect/pkg/auth"
	"github.com/khoahotran/devconnect/pkg/logger"
)

type postAPI struct {
	router *gin.Engine
	jwtSvc *auth.JWTService
	posts  *memPostRepo
	users  *memUserRepo
}

func newPostAPI(t *testing.T, users ...user.User) *postAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	postRepo := newMemPostRepo()
	userRepo := newMemUserRepo(users...)
	log := logger.NewNop()

	handler := NewPostHandler(
		postUC.NewCreatePostUseCase(postRepo, userRepo, nopPublisher{}, log),
		postUC.NewListPostsUseCase(postRepo, nil, log),
		postUC.NewGetPostUseCase(postRepo),
		postUC.NewDeletePostUseCase(postRepo, nopPublisher{}, log),
		postUC.NewLikePostUseCase(postRepo),
		postUC.NewCommentPostUseCase(postRepo, userRepo),
	)

	r := gin.New()
	r.Use(ErrorMiddleware(logger.NewNop()))
	posts := r.Group("/api/posts")
	posts.Use(AuthMiddleware(jwtSvc))
	{
		posts.POST("", handler.CreatePost)
		posts.GET("", handler.ListPosts)
		posts.GET("/:id", handler.GetPost)
		posts.DELETE("/:id", handler.DeletePost)
		posts.PUT("/like/:id", handler.LikePost)
		posts.PUT("/unlike/:id", handler.UnlikePost)
		posts.PUT("/comments/:id", handler.AddComment)
		posts.DELETE("/comments/:id/:commentId", handler.RemoveComment)
	}

	return &postAPI{router: r, jwtSvc: jwtSvc, posts: postRepo, users: userRepo}
}

func (a *postAPI) do(t *testing.T, method, path string, asUser uuid.UUID, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	token, err := a.jwtSvc.GenerateToken(asUser)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func testUser(name string) user.User {
	return user.User{ID: uuid.New(), Email: name + "@example.com", Name: name, Avatar: "//gravatar/" + name}
}

func TestCreateAndGetPost(t *testing.T) {
	author := testUser("author")
	api := newPostAPI(t, author)

	w := api.do(t, http.MethodPost, "/api/posts", author.ID, gin.H{"text": "hello"})
	require.Equal(t, http.StatusOK, w.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "hello", created["text"])
	assert.Equal(t, author.Name, created["name"])

	w = api.do(t, http.MethodGet, "/api/posts/"+created["id"].(string), author.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCreatePost_EmptyText(t *testing.T) {
	author := testUser("author")
	api := newPostAPI(t, author)

	w := api.do(t, http.MethodPost, "/api/posts", author.ID, gin.H{"text": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":[{"msg":"Text should not be empty","param":"text"}]}`, w.Body.String())
}

func TestGetPost_BadOrMissingID(t *testing.T) {
	author := testUser("author")
	api := newPostAPI(t, author)

	w := api.do(t, http.MethodGet, "/api/posts/not-a-uuid", author.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"msg":"Post not found"}`, w.Body.String())

	w = api.do(t, http.MethodGet, "/api/posts/"+uuid.NewString(), author.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"msg":"Post not found"}`, w.Body.String())
}

func TestLikeUnlike_ErrorShapes(t *testing.T) {
	author := testUser("author")
	api := newPostAPI(t, author)

	w := api.do(t, http.MethodPost, "/api/posts", author.ID, gin.H{"text": "hello"})
	require.Equal(t, http.StatusOK, w.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	postID := created["id"].(string)

	w = api.do(t, http.MethodPut, "/api/posts/like/"+postID, author.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodPut, "/api/posts/like/"+postID, author.ID, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"msg":"Post already liked"}`, w.Body.String())

	w = api.do(t, http.MethodPut, "/api/posts/unlike/"+postID, author.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = api.do(t, http.MethodPut, "/api/posts/unlike/"+postID, author.ID, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"msg":"Post has not been liked"}`, w.Body.String())
}

func TestDeletePost_Authorization(t *testing.T) {
	author := testUser("author")
	stranger := testUser("stranger")
	api := newPostAPI(t, author, stranger)

	w := api.do(t, http.MethodPost, "/api/posts", author.ID, gin.H{"text": "hello"})
	require.Equal(t, http.StatusOK, w.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	postID := created["id"].(string)

	w = api.do(t, http.MethodDelete, "/api/posts/"+postID, stranger.ID, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"msg":"User not authorized"}`, w.Body.String())

	w = api.do(t, http.MethodDelete, "/api/posts/"+postID, author.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"msg":"Post removed"}`, w.Body.String())

	w = api.do(t, http.MethodDelete, "/api/posts/"+postID, author.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestComments_HTTPLifecycle(t *testing.T) {
	author := testUser("author")
	commenter := testUser("commenter")
	api := newPostAPI(t, author, commenter)

	w := api.do(t, http.MethodPost, "/api/posts", author.ID, gin.H{"text": "hello"})
	require.Equal(t, http.StatusOK, w.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	postID := created["id"].(string)

	w = api.do(t, http.MethodPut, "/api/posts/comments/"+postID, commenter.ID, gin.H{"text": "nice"})
	require.Equal(t, http.StatusOK, w.Code)

	var comments []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	require.Len(t, comments, 1)
	assert.Equal(t, commenter.Name, comments[0]["name"])
	commentID := comments[0]["id"].(string)

	w = api.do(t, http.MethodDelete, "/api/posts/comments/"+postID+"/"+commentID, author.ID, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"msg":"User not authorized"}`, w.Body.String())

	w = api.do(t, http.MethodDelete, "/api/posts/comments/"+postID+"/"+commentID, commenter.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
