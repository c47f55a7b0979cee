package post

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/khoahotran/devconnect/internal/domain/post"
	"github.com/khoahotran/devconnect/pkg/apperror"
)

// LikePostUseCase toggles a single user's like on a post. The aggregate
// enforces at most one like per (post, user); the whole document is written
// back after the mutation.
type LikePostUseCase struct {
	postRepo post.Repository
}

func NewLikePostUseCase(pRepo post.Repository) *LikePostUseCase {
	return &LikePostUseCase{postRepo: pRepo}
}

func (uc *LikePostUseCase) findPost(ctx context.Context, postID uuid.UUID) (*post.Post, error) {
	p, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return nil, apperror.NewNotFound("Post", postID.String())
		}
		return nil, apperror.NewInternal("failed to query post", err)
	}
	return p, nil
}

func (uc *LikePostUseCase) Like(ctx context.Context, userID, postID uuid.UUID) ([]post.Like, error) {
	p, err := uc.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := p.AddLike(userID); err != nil {
		return nil, apperror.NewConflict("Post already liked")
	}

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to persist like", err)
	}
	return p.Likes, nil
}

func (uc *LikePostUseCase) Unlike(ctx context.Context, userID, postID uuid.UUID) ([]post.Like, error) {
	p, err := uc.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveLike(userID); err != nil {
		return nil, apperror.NewConflict("Post has not been liked")
	}

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to persist unlike", err)
	}
	return p.Likes, nil
}
