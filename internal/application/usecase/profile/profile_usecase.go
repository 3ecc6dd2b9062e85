package profile

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khanhvu/devconnect/adapters/event"
	"github.com/khanhvu/devconnect/internal/application/service"
	"github.com/khanhvu/devconnect/internal/domain/profile"
	"github.com/khanhvu/devconnect/internal/domain/user"
	"github.com/khanhvu/devconnect/pkg/apperror"
	"github.com/khanhvu/devconnect/pkg/logger"
)

// ProfileUseCase owns the profile aggregate lifecycle: the document itself
// plus its embedded experience and education lists.
type ProfileUseCase struct {
	profileRepo profile.Repository
	userDir     user.Directory
	cache       service.ProfileCache
	events      event.Publisher
	logger      logger.Logger
}

func NewProfileUseCase(repo profile.Repository, dir user.Directory, cache service.ProfileCache, events event.Publisher, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		userDir:     dir,
		cache:       cache,
		events:      events,
		logger:      log,
	}
}

// ProfileWithOwner is a profile joined with the owner's display fields.
type ProfileWithOwner struct {
	Profile *profile.Profile `json:"profile"`
	Owner   *user.User       `json:"owner"`
}

func errNoProfile() *apperror.AppError {
	return apperror.NewAppError(apperror.ErrNotFound, "There is no profile for this user.", "no profile references this user", nil)
}

func (uc *ProfileUseCase) joinOwner(ctx context.Context, p *profile.Profile) *ProfileWithOwner {
	owner, err := uc.userDir.FindByID(ctx, p.UserID)
	if err != nil {
		uc.logger.Warn("Failed to join profile owner", zap.String("user_id", p.UserID.String()), zap.Error(err))
	}
	return &ProfileWithOwner{Profile: p, Owner: owner}
}

func (uc *ProfileUseCase) GetOwn(ctx context.Context, userID uuid.UUID) (*ProfileWithOwner, error) {
	p, err := uc.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, errNoProfile()
		}
		return nil, err
	}
	return uc.joinOwner(ctx, p), nil
}

func (uc *ProfileUseCase) GetByHandle(ctx context.Context, handle string) (*ProfileWithOwner, error) {
	p, err := uc.profileRepo.FindByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, errNoProfile()
		}
		return nil, err
	}
	return uc.joinOwner(ctx, p), nil
}

func (uc *ProfileUseCase) GetByUserID(ctx context.Context, targetUserID uuid.UUID) (*ProfileWithOwner, error) {
	return uc.GetOwn(ctx, targetUserID)
}

// ListAll returns every profile joined with owner display fields, in
// store-native order. The joined list is served cache-aside; cache failures
// only degrade to a store read.
func (uc *ProfileUseCase) ListAll(ctx context.Context) ([]*ProfileWithOwner, error) {
	if cached, hit, err := uc.cache.GetList(ctx); err != nil {
		uc.logger.Warn("Profile list cache read failed", zap.Error(err))
	} else if hit {
		var out []*ProfileWithOwner
		if err := json.Unmarshal(cached, &out); err == nil {
			return out, nil
		}
		uc.logger.Warn("Dropping undecodable profile list cache entry")
	}

	profiles, err := uc.profileRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(profiles))
	for i, p := range profiles {
		ids[i] = p.UserID
	}
	owners, err := uc.userDir.FindByIDs(ctx, ids)
	if err != nil {
		uc.logger.Warn("Failed to batch join profile owners", zap.Error(err))
		owners = map[uuid.UUID]*user.User{}
	}

	out := make([]*ProfileWithOwner, len(profiles))
	for i, p := range profiles {
		out[i] = &ProfileWithOwner{Profile: p, Owner: owners[p.UserID]}
	}

	if payload, err := json.Marshal(out); err == nil {
		if err := uc.cache.SetList(ctx, payload); err != nil {
			uc.logger.Warn("Profile list cache write failed", zap.Error(err))
		}
	}

	return out, nil
}

func (uc *ProfileUseCase) invalidateList(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("Profile list cache invalidation failed", zap.Error(err))
	}
}

func (uc *ProfileUseCase) publishProfileEvent(eventType event.ProfileEventType, userID uuid.UUID, handle string) {
	go func() {
		err := uc.events.PublishProfileEvent(context.Background(), event.ProfileEventPayload{
			EventType: eventType,
			UserID:    userID,
			Handle:    handle,
			At:        time.Now().UTC(),
		})
		if err != nil {
			uc.logger.Error("Failed to publish profile event", err, zap.String("user_id", userID.String()))
		}
	}()
}
