package post

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/khoahotran/devconnect/internal/domain/post"
	"github.com/khoahotran/devconnect/pkg/apperror"
)

type GetPostUseCase struct {
	postRepo post.Repository
}

func NewGetPostUseCase(pRepo post.Repository) *GetPostUseCase {
	return &GetPostUseCase{postRepo: pRepo}
}

func (uc *GetPostUseCase) Execute(ctx context.Context, postID uuid.UUID) (*post.Post, error) {
	p, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return nil, apperror.NewNotFound("Post", postID.String())
		}
		return nil, apperror.NewInternal("failed to query post", err)
	}
	return p, nil
}
