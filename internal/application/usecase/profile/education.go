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

func (uc *ProfileUseCase) AddEducation(ctx context.Context, userID uuid.UUID, in profile.EducationInput) (*profile.Profile, error) {
	if res := validation.Education(in); !res.IsValid {
		return nil, apperror.NewValidationFailed(res.Errors)
	}

	p, err := uc.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, errNoProfile()
		}
		return nil, err
	}

	p.AddEducation(profile.Education{
		ID:           uuid.New(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	})
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.invalidateList(ctx)
	uc.publishProfileEvent(event.ProfileEventTypeUpdated, userID, p.Handle)
	return p, nil
}

func (uc *ProfileUseCase) RemoveEducation(ctx context.Context, userID, educationID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, errNoProfile()
		}
		return nil, err
	}

	if !p.RemoveEducation(educationID) {
		return nil, apperror.NewNotFound("education entry", educationID.String())
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.invalidateList(ctx)
	uc.publishProfileEvent(event.ProfileEventTypeUpdated, userID, p.Handle)
	return p, nil
}
