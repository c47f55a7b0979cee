package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnect/adapters/event"
	"github.com/khoahotran/devconnect/internal/domain/post"
	"github.com/khoahotran/devconnect/internal/domain/profile"
	"github.com/khoahotran/devconnect/internal/domain/user"
	"github.com/khoahotran/devconnect/pkg/logger"
)

// AccountEventPublisher is the slice of the Kafka producer this coordinator
// needs.
type AccountEventPublisher interface {
	PublishAccountEvent(ctx context.Context, payload event.AccountEventPayload) error
}

// DeleteAccountUseCase coordinates removal of everything a user owns: posts
// first, then the profile, then the credential record. The saga is
// best-effort with no compensation; a failed step is logged and the next one
// still runs, so repeating the call against a half-deleted account converges.
type DeleteAccountUseCase struct {
	postRepo    post.Repository
	profileRepo profile.Repository
	userRepo    user.Repository
	events      AccountEventPublisher
	logger      logger.Logger
}

func NewDeleteAccountUseCase(
	pRepo post.Repository,
	profRepo profile.Repository,
	uRepo user.Repository,
	events AccountEventPublisher,
	log logger.Logger,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		postRepo:    pRepo,
		profileRepo: profRepo,
		userRepo:    uRepo,
		events:      events,
		logger:      log,
	}
}

func (uc *DeleteAccountUseCase) Execute(ctx context.Context, userID uuid.UUID) error {
	var failed bool

	if err := uc.postRepo.DeleteByAuthor(ctx, userID); err != nil {
		failed = true
		uc.logger.Error("Account deletion: removing posts failed", err, zap.String("user_id", userID.String()))
	}

	if err := uc.profileRepo.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, profile.ErrProfileNotFound) {
		failed = true
		uc.logger.Error("Account deletion: removing profile failed", err, zap.String("user_id", userID.String()))
	}

	if err := uc.userRepo.Delete(ctx, userID); err != nil && !errors.Is(err, user.ErrUserNotFound) {
		failed = true
		uc.logger.Error("Account deletion: removing credential record failed", err, zap.String("user_id", userID.String()))
	}

	go func() {
		err := uc.events.PublishAccountEvent(context.Background(), event.AccountEventPayload{
			EventType: event.AccountEventTypeDeleted,
			UserID:    userID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish Kafka 'account deleted' event", err, zap.String("user_id", userID.String()))
		}
	}()

	if failed {
		uc.logger.Warn("Account deletion finished with failed steps", zap.String("user_id", userID.String()))
	}
	return nil
}
