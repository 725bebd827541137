// test/mock/grant_service.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gimme-oss/gimme/model"
)

// MockGrantService is a mock implementation of service.IGrantService
type MockGrantService struct {
	mock.Mock
}

func (m *MockGrantService) ApplyGrant(ctx context.Context, req model.GrantRequest, auth model.SessionAuth) (*model.GrantReceipt, error) {
	args := m.Called(ctx, req, auth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GrantReceipt), args.Error(1)
}
