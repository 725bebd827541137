// test/mock/policy_store.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gimme-oss/gimme/model"
)

// MockPolicyStore is a mock implementation of service.PolicyStore
type MockPolicyStore struct {
	mock.Mock
}

func (m *MockPolicyStore) GetPolicy(ctx context.Context, projectID string) (*model.Policy, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Policy), args.Error(1)
}

func (m *MockPolicyStore) SetPolicy(ctx context.Context, projectID string, policy *model.Policy) error {
	args := m.Called(ctx, projectID, policy)
	return args.Error(0)
}
