package post

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnect/adapters/event"
	"github.com/khoahotran/devconnect/internal/domain/post"
	"github.com/khoahotran/devconnect/internal/domain/user"
	"github.com/khoahotran/devconnect/pkg/apperror"
	"github.com/khoahotran/devconnect/pkg/logger"
)

// EventPublisher is the slice of the Kafka producer the post use cases need.
type EventPublisher interface {
	PublishPostEvent(ctx context.Context, payload event.PostEventPayload) error
}

var tracer = otel.Tracer("post_usecase")

type CreatePostUseCase struct {
	postRepo post.Repository
	userRepo user.Repository
	events   EventPublisher
	logger   logger.Logger
}

func NewCreatePostUseCase(pRepo post.Repository, uRepo user.Repository, events EventPublisher, log logger.Logger) *CreatePostUseCase {
	return &CreatePostUseCase{
		postRepo: pRepo,
		userRepo: uRepo,
		events:   events,
		logger:   log,
	}
}

type CreatePostInput struct {
	AuthorID uuid.UUID
	Text     string
}

// Execute creates a post, snapshotting the author's current display name and
// avatar into the document. The snapshot is never re-synced afterwards.
func (uc *CreatePostUseCase) Execute(ctx context.Context, input CreatePostInput) (*post.Post, error) {
	ctx, span := tracer.Start(ctx, "CreatePost")
	defer span.End()

	if input.Text == "" {
		return nil, apperror.NewValidation(apperror.FieldViolation{Msg: "Text should not be empty", Param: "text"})
	}

	author, err := uc.userRepo.FindByID(ctx, input.AuthorID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("User", input.AuthorID.String())
		}
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to look up author", err)
	}

	newPost := &post.Post{
		ID:        uuid.New(),
		AuthorID:  author.ID,
		Text:      input.Text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		Likes:     []post.Like{},
		Comments:  []post.Comment{},
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.postRepo.Save(ctx, newPost); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to save post", err)
	}

	go func() {
		err := uc.events.PublishPostEvent(context.Background(), event.PostEventPayload{
			EventType: event.PostEventTypeCreated,
			PostID:    newPost.ID,
			AuthorID:  newPost.AuthorID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish Kafka 'created' event", err, zap.String("post_id", newPost.ID.String()))
		}
	}()

	return newPost, nil
}
