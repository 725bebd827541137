// test/mock/audit.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/gimme-oss/gimme/audit"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogGrant(ctx context.Context, log audit.GrantLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditService) QueryLogs(ctx context.Context, from, to time.Time, requester, project string) ([]audit.GrantLog, error) {
	args := m.Called(ctx, from, to, requester, project)
	return args.Get(0).([]audit.GrantLog), args.Error(1)
}
