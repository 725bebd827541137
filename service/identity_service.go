// service/identity_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/gimme-oss/gimme/config"
	gimme_errors "github.com/gimme-oss/gimme/errors"
	logger "github.com/gimme-oss/gimme/logging"
	"github.com/gimme-oss/gimme/model"
	"github.com/gimme-oss/gimme/util"
)

// IIdentityService resolves the caller's organizational identity from the
// identity provider's profile endpoint.
type IIdentityService interface {
	Resolve(ctx context.Context, auth model.SessionAuth) (*model.Identity, error)
}

// IdentityService looks up the Google profile behind a bearer token. A
// resolved identity is cached for the session's lifetime; the lookup itself
// is a single attempt with no retry.
type IdentityService struct {
	Endpoint   string
	HTTPClient *http.Client // overrides the token-bound client when set
	cache      *util.CacheService
}

func NewIdentityService(cache *util.CacheService) *IdentityService {
	return &IdentityService{
		Endpoint: config.GetString("google.userinfoEndpoint"),
		cache:    cache,
	}
}

// profile is the subset of the userinfo response the service cares about.
type profile struct {
	HD    string `json:"hd"`
	Email string `json:"email"`
}

func (s *IdentityService) Resolve(ctx context.Context, auth model.SessionAuth) (*model.Identity, error) {
	if s.cache != nil && auth.SessionID != "" {
		cached, err := s.cache.GetIdentity(ctx, auth.SessionID)
		if err != nil {
			logger.Warn("Identity cache lookup failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	client := s.HTTPClient
	if client == nil {
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: auth.AccessToken}))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gimme_errors.ErrIdentityUnavailable, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		logger.Error("Profile lookup failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", gimme_errors.ErrIdentityUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("Profile lookup returned non-OK status", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: profile lookup returned status %d", gimme_errors.ErrIdentityUnavailable, resp.StatusCode)
	}

	var p profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", gimme_errors.ErrIdentityUnavailable, err)
	}
	if p.HD == "" || p.Email == "" {
		logger.Error("Profile response is missing required fields",
			zap.Bool("hasDomain", p.HD != ""),
			zap.Bool("hasEmail", p.Email != ""))
		return nil, gimme_errors.ErrProfileIncomplete
	}

	identity := &model.Identity{Domain: p.HD, Account: p.Email}

	if s.cache != nil && auth.SessionID != "" {
		if err := s.cache.SetIdentity(ctx, auth.SessionID, *identity); err != nil {
			logger.Warn("Failed to cache identity", zap.Error(err), zap.String("sessionID", auth.SessionID))
		}
	}

	return identity, nil
}
