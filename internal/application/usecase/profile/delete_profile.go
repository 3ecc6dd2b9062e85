package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/khanhvu/devconnect/adapters/event"
)

// DeleteOwn removes the caller's profile and then the user account itself.
// Both deletions are idempotent: deleting what is already gone succeeds.
func (uc *ProfileUseCase) DeleteOwn(ctx context.Context, userID uuid.UUID) error {
	if err := uc.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := uc.userDir.Delete(ctx, userID); err != nil {
		return err
	}

	uc.invalidateList(ctx)
	uc.publishProfileEvent(event.ProfileEventTypeDeleted, userID, "")
	return nil
}
