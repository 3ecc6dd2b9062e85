package post

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khanhvu/devconnect/adapters/event"
	"github.com/khanhvu/devconnect/internal/domain/post"
	"github.com/khanhvu/devconnect/internal/validation"
	"github.com/khanhvu/devconnect/pkg/apperror"
	"github.com/khanhvu/devconnect/pkg/logger"
)

// PostUseCase owns the post aggregate lifecycle, including the embedded
// like and comment lists.
type PostUseCase struct {
	postRepo post.Repository
	events   event.Publisher
	logger   logger.Logger
}

func NewPostUseCase(repo post.Repository, events event.Publisher, log logger.Logger) *PostUseCase {
	return &PostUseCase{
		postRepo: repo,
		events:   events,
		logger:   log,
	}
}

// ListAll returns every post, newest first.
func (uc *PostUseCase) ListAll(ctx context.Context) ([]*post.Post, error) {
	return uc.postRepo.FindAll(ctx)
}

func (uc *PostUseCase) GetByID(ctx context.Context, postID uuid.UUID) (*post.Post, error) {
	return uc.postRepo.FindByID(ctx, postID)
}

func (uc *PostUseCase) Create(ctx context.Context, userID uuid.UUID, in post.Input) (*post.Post, error) {
	if res := validation.Post(in); !res.IsValid {
		return nil, apperror.NewValidationFailed(res.Errors)
	}

	newPost := &post.Post{
		ID:       uuid.New(),
		UserID:   userID,
		Text:     in.Text,
		Name:     in.Name,
		Avatar:   in.Avatar,
		Likes:    []post.Like{},
		Comments: []post.Comment{},
		Date:     time.Now().UTC(),
	}

	if err := uc.postRepo.Create(ctx, newPost); err != nil {
		return nil, err
	}

	uc.publishPostEvent(event.PostEventTypeCreated, newPost.ID, userID)
	return newPost, nil
}

// Delete removes a post after checking the caller owns it. The deleted post
// is returned so the boundary can echo it.
func (uc *PostUseCase) Delete(ctx context.Context, postID, userID uuid.UUID) (*post.Post, error) {
	p, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if p.UserID != userID {
		return nil, apperror.NewUnauthorized("only the post owner can delete it")
	}

	if err := uc.postRepo.Delete(ctx, postID); err != nil {
		return nil, err
	}

	uc.publishPostEvent(event.PostEventTypeDeleted, postID, userID)
	return p, nil
}

func (uc *PostUseCase) publishPostEvent(eventType event.PostEventType, postID, actorID uuid.UUID) {
	go func() {
		err := uc.events.PublishPostEvent(context.Background(), event.PostEventPayload{
			EventType: eventType,
			PostID:    postID,
			ActorID:   actorID,
			At:        time.Now().UTC(),
		})
		if err != nil {
			uc.logger.Error("Failed to publish post event", err, zap.String("post_id", postID.String()))
		}
	}()
}
