// test/mock/identity_service.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gimme-oss/gimme/model"
)

// MockIdentityService is a mock implementation of service.IIdentityService
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) Resolve(ctx context.Context, auth model.SessionAuth) (*model.Identity, error) {
	args := m.Called(ctx, auth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Identity), args.Error(1)
}
