// util/cache_service.go

package util

import (
	"context"

	"github.com/gimme-oss/gimme/db"
	"github.com/gimme-oss/gimme/model"
)

// CacheService fronts the session identity cache. The IAM policy itself is
// deliberately never cached: every grant request re-fetches it from the
// policy store.
type CacheService struct{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

func (c *CacheService) GetIdentity(ctx context.Context, sessionID string) (*model.Identity, error) {
	return db.GetCachedIdentity(ctx, sessionID)
}

func (c *CacheService) SetIdentity(ctx context.Context, sessionID string, identity model.Identity) error {
	return db.CacheIdentity(ctx, sessionID, &identity)
}

func (c *CacheService) DeleteIdentity(ctx context.Context, sessionID string) error {
	return db.DeleteCachedIdentity(ctx, sessionID)
}
