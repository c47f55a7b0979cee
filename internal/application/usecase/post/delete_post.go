package post

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnect/adapters/event"
	"github.com/khoahotran/devconnect/internal/domain/post"
	"github.com/khoahotran/devconnect/pkg/apperror"
	"github.com/khoahotran/devconnect/pkg/logger"
)

type DeletePostUseCase struct {
	postRepo post.Repository
	events   EventPublisher
	logger   logger.Logger
}

func NewDeletePostUseCase(pRepo post.Repository, events EventPublisher, log logger.Logger) *DeletePostUseCase {
	return &DeletePostUseCase{
		postRepo: pRepo,
		events:   events,
		logger:   log,
	}
}

type DeletePostInput struct {
	PostID  uuid.UUID
	ActorID uuid.UUID
}

// Execute removes a post and its embedded collections as one unit. Only the
// post's author may delete it; the ownership check runs before any write.
func (uc *DeletePostUseCase) Execute(ctx context.Context, input DeletePostInput) error {
	p, err := uc.postRepo.FindByID(ctx, input.PostID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return apperror.NewNotFound("Post", input.PostID.String())
		}
		return apperror.NewInternal("failed to query post", err)
	}

	if !post.IsOwner(input.ActorID, p.AuthorID) {
		return apperror.NewPermissionDenied("only the author can delete a post")
	}

	if err := uc.postRepo.Delete(ctx, input.PostID); err != nil {
		return apperror.NewInternal("failed to delete post", err)
	}

	go func() {
		err := uc.events.PublishPostEvent(context.Background(), event.PostEventPayload{
			EventType: event.PostEventTypeDeleted,
			PostID:    input.PostID,
			AuthorID:  p.AuthorID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish Kafka 'deleted' event", err, zap.String("post_id", input.PostID.String()))
		}
	}()

	return nil
}
