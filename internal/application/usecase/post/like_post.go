package post

import (
	"context"

	"github.com/google/uuid"

	"github.com/khanhvu/devconnect/adapters/event"
	"github.com/khanhvu/devconnect/internal/domain/post"
	"github.com/khanhvu/devconnect/pkg/apperror"
)

// Like prepends the caller to the post's like set. A like is membership,
// not a counter: liking twice is a conflict and leaves the post untouched.
func (uc *PostUseCase) Like(ctx context.Context, postID, userID uuid.UUID) (*post.Post, error) {
	p, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if p.HasLike(userID) {
		return nil, apperror.NewConflictMsg("User already liked this post.")
	}

	p.AddLike(userID)
	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.publishPostEvent(event.PostEventTypeLiked, postID, userID)
	return p, nil
}

func (uc *PostUseCase) Unlike(ctx context.Context, postID, userID uuid.UUID) (*post.Post, error) {
	p, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !p.RemoveLike(userID) {
		return nil, apperror.NewConflictMsg("You have not yet liked this post.")
	}

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.publishPostEvent(event.PostEventTypeUnliked, postID, userID)
	return p, nil
}
