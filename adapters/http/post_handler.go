package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	postUC "github.com/khoahotran/devconnect/internal/application/usecase/post"
	"github.com/khoahotran/devconnect/pkg/apperror"
)

type PostHandler struct {
	createPostUseCase  *postUC.CreatePostUseCase
	listPostsUseCase   *postUC.ListPostsUseCase
	getPostUseCase     *postUC.GetPostUseCase
	deletePostUseCase  *postUC.DeletePostUseCase
	likePostUseCase    *postUC.LikePostUseCase
	commentPostUseCase *postUC.CommentPostUseCase
}

func NewPostHandler(
	createUC *postUC.CreatePostUseCase,
	listUC *postUC.ListPostsUseCase,
	getUC *postUC.GetPostUseCase,
	deleteUC *postUC.DeletePostUseCase,
	likeUC *postUC.LikePostUseCase,
	commentUC *postUC.CommentPostUseCase,
) *PostHandler {
	return &PostHandler{
		createPostUseCase:  createUC,
		listPostsUseCase:   listUC,
		getPostUseCase:     getUC,
		deletePostUseCase:  deleteUC,
		likePostUseCase:    likeUC,
		commentPostUseCase: commentUC,
	}
}

// postIDParam treats an unparseable id like a missing post, matching the
// public contract for dangling identifiers.
func postIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewNotFound("Post", c.Param("id")))
		return uuid.Nil, false
	}
	return id, true
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for post", err))
		return
	}

	p, err := h.createPostUseCase.Execute(c.Request.Context(), postUC.CreatePostInput{
		AuthorID: userID,
		Text:     req.Text,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.listPostsUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	p, err := h.getPostUseCase.Execute(c.Request.Context(), postID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	err := h.deletePostUseCase.Execute(c.Request.Context(), postUC.DeletePostInput{
		PostID:  postID,
		ActorID: userID,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Post removed"})
}

func (h *PostHandler) LikePost(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	likes, err := h.likePostUseCase.Like(c.Request.Context(), userID, postID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

func (h *PostHandler) UnlikePost(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	likes, err := h.likePostUseCase.Unlike(c.Request.Context(), userID, postID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

func (h *PostHandler) AddComment(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for comment", err))
		return
	}

	comments, err := h.commentPostUseCase.Add(c.Request.Context(), postUC.AddCommentInput{
		PostID: postID,
		UserID: userID,
		Text:   req.Text,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *PostHandler) RemoveComment(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		c.Error(apperror.NewNotFound("Comment", c.Param("commentId")))
		return
	}

	comments, err := h.commentPostUseCase.Remove(c.Request.Context(), postUC.RemoveCommentInput{
		PostID:    postID,
		CommentID: commentID,
		ActorID:   userID,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
