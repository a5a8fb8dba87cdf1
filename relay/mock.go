package relay

import (
	"context"

	"github.com/ruteri/brand-attestations/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockRelay mocks the Relay interface
type MockRelay struct {
	mock.Mock
}

// Attest mocks the Attest method
func (m *MockRelay) Attest(ctx context.Context, req *interfaces.RelayRequest) (*interfaces.RelayReceipt, error) {
	args := m.Called(ctx, req)
	receipt, _ := args.Get(0).(*interfaces.RelayReceipt)
	return receipt, args.Error(1)
}
