// audit/service.go
package audit

import (
	"context"
	"time"
)

type Service interface {
	LogGrant(ctx context.Context, log GrantLog) error
	QueryLogs(ctx context.Context, from, to time.Time, requester, project string) ([]GrantLog, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) LogGrant(ctx context.Context, log GrantLog) error {
	return s.repo.LogGrant(ctx, log)
}

func (s *service) QueryLogs(ctx context.Context, from, to time.Time, requester, project string) ([]GrantLog, error) {
	return s.repo.QueryLogs(ctx, from, to, requester, project)
}
