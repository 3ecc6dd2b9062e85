package post

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khanhvu/devconnect/adapters/event"
	"github.com/khanhvu/devconnect/internal/domain/post"
	"github.com/khanhvu/devconnect/internal/validation"
	"github.com/khanhvu/devconnect/pkg/apperror"
)

// AddComment validates the payload (same contract as post creation) and
// prepends a new comment authored by the caller.
func (uc *PostUseCase) AddComment(ctx context.Context, postID, userID uuid.UUID, in post.Input) (*post.Post, error) {
	if res := validation.Post(in); !res.IsValid {
		return nil, apperror.NewValidationFailed(res.Errors)
	}

	p, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	p.AddComment(post.Comment{
		ID:     uuid.New(),
		UserID: userID,
		Text:   in.Text,
		Name:   in.Name,
		Avatar: in.Avatar,
		Date:   time.Now().UTC(),
	})

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.publishPostEvent(event.PostEventTypeCommented, postID, userID)
	return p, nil
}

// RemoveComment deletes the first comment authored by the caller. Removal
// is keyed by author identity, not comment id; see the domain note on
// RemoveCommentByAuthor.
func (uc *PostUseCase) RemoveComment(ctx context.Context, postID, userID uuid.UUID) (*post.Post, error) {
	p, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !p.RemoveCommentByAuthor(userID) {
		return nil, apperror.NewConflictMsg("Comment does not exist.")
	}

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}
