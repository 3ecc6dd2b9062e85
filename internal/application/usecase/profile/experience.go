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

// AddExperience validates the payload, then prepends a new entry to the
// owner's experience list. Having no profile yet is an error, never a
// create-on-the-fly.
func (uc *ProfileUseCase) AddExperience(ctx context.Context, userID uuid.UUID, in profile.ExperienceInput) (*profile.Profile, error) {
	if res := validation.Experience(in); !res.IsValid {
		return nil, apperror.NewValidationFailed(res.Errors)
	}

	p, err := uc.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, errNoProfile()
		}
		return nil, err
	}

	p.AddExperience(profile.Experience{
		ID:          uuid.New(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	})
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.invalidateList(ctx)
	uc.publishProfileEvent(event.ProfileEventTypeUpdated, userID, p.Handle)
	return p, nil
}

// RemoveExperience deletes the entry with the given id from the owner's own
// list. A missing id is reported as not found; the same policy applies to
// education entries.
func (uc *ProfileUseCase) RemoveExperience(ctx context.Context, userID, experienceID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, errNoProfile()
		}
		return nil, err
	}

	if !p.RemoveExperience(experienceID) {
		return nil, apperror.NewNotFound("experience entry", experienceID.String())
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.invalidateList(ctx)
	uc.publishProfileEvent(event.ProfileEventTypeUpdated, userID, p.Handle)
	return p, nil
}
