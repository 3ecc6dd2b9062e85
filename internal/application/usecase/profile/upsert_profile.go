package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/khanhvu/devconnect/adapters/event"
	"github.com/khanhvu/devconnect/internal/domain/profile"
	"github.com/khanhvu/devconnect/internal/validation"
	"github.com/khanhvu/devconnect/pkg/apperror"
)

// Upsert creates the caller's profile or partially updates the existing
// one. Only fields present in the patch are touched; validation failure is
// an atomic no-op.
func (uc *ProfileUseCase) Upsert(ctx context.Context, userID uuid.UUID, patch profile.Patch) (*profile.Profile, error) {
	if res := validation.Profile(patch); !res.IsValid {
		return nil, apperror.NewValidationFailed(res.Errors)
	}

	now := time.Now().UTC()

	existing, err := uc.profileRepo.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		existing.Apply(patch)
		existing.UpdatedAt = now
		if err := uc.profileRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		uc.invalidateList(ctx)
		uc.publishProfileEvent(event.ProfileEventTypeUpdated, userID, existing.Handle)
		return existing, nil

	case errors.Is(err, apperror.ErrNotFound):
		// creation path: the handle must not collide with anyone else's
		if _, err := uc.profileRepo.FindByHandle(ctx, patch.Handle); err == nil {
			return nil, apperror.NewConflictMsg("That handle already exists.")
		} else if !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}

		created := &profile.Profile{
			UserID:     userID,
			Skills:     []string{},
			Experience: []profile.Experience{},
			Education:  []profile.Education{},
			UpdatedAt:  now,
		}
		created.Apply(patch)
		if err := uc.profileRepo.Create(ctx, created); err != nil {
			return nil, err
		}
		uc.invalidateList(ctx)
		uc.publishProfileEvent(event.ProfileEventTypeUpdated, userID, created.Handle)
		return created, nil

	default:
		return nil, err
	}
}
