package service

import (
	"context"
)

// ProfileCache is the cache-aside port for the public profile list. A miss
// is (nil, false, nil); cache failures are reported but never fatal to the
// request.
type ProfileCache interface {
	GetList(ctx context.Context) ([]byte, bool, error)
	SetList(ctx context.Context, payload []byte) error
	Invalidate(ctx context.Context) error
}
