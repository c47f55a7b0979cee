package post

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/devconnect/internal/domain/post"
	"github.com/khoahotran/devconnect/internal/domain/user"
	"github.com/khoahotran/devconnect/pkg/apperror"
)

type CommentPostUseCase struct {
	postRepo post.Repository
	userRepo user.Repository
}

func NewCommentPostUseCase(pRepo post.Repository, uRepo user.Repository) *CommentPostUseCase {
	return &CommentPostUseCase{
		postRepo: pRepo,
		userRepo: uRepo,
	}
}

type AddCommentInput struct {
	PostID uuid.UUID
	UserID uuid.UUID
	Text   string
}

// Add prepends a comment snapshotting the commenter's name and avatar, and
// returns the post's updated comment sequence, newest first.
func (uc *CommentPostUseCase) Add(ctx context.Context, input AddCommentInput) ([]post.Comment, error) {
	if input.Text == "" {
		return nil, apperror.NewValidation(apperror.FieldViolation{Msg: "Text should not be empty", Param: "text"})
	}

	p, err := uc.postRepo.FindByID(ctx, input.PostID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return nil, apperror.NewNotFound("Post", input.PostID.String())
		}
		return nil, apperror.NewInternal("failed to query post", err)
	}

	commenter, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("User", input.UserID.String())
		}
		return nil, apperror.NewInternal("failed to look up commenter", err)
	}

	p.AddComment(post.Comment{
		UserID:    commenter.ID,
		Text:      input.Text,
		Name:      commenter.Name,
		Avatar:    commenter.Avatar,
		CreatedAt: time.Now().UTC(),
	})

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to persist comment", err)
	}
	return p.Comments, nil
}

type RemoveCommentInput struct {
	PostID    uuid.UUID
	CommentID uuid.UUID
	ActorID   uuid.UUID
}

// Remove deletes a comment; only its author may do so.
func (uc *CommentPostUseCase) Remove(ctx context.Context, input RemoveCommentInput) ([]post.Comment, error) {
	p, err := uc.postRepo.FindByID(ctx, input.PostID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return nil, apperror.NewNotFound("Post", input.PostID.String())
		}
		return nil, apperror.NewInternal("failed to query post", err)
	}

	c, ok := p.FindComment(input.CommentID)
	if !ok {
		return nil, apperror.NewNotFound("Comment", input.CommentID.String())
	}

	if !post.IsOwner(input.ActorID, c.UserID) {
		return nil, apperror.NewPermissionDenied("only the comment's author can remove it")
	}

	if err := p.RemoveComment(input.CommentID); err != nil {
		return nil, apperror.NewNotFound("Comment", input.CommentID.String())
	}

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to persist comment removal", err)
	}
	return p.Comments, nil
}
