package payments

import (
	"context"
	"strings"
)

// ChargeRequest describes a charge attempt sent to the external gateway
type ChargeRequest struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Method    string `json:"method"`
	Reference string `json:"reference"`
}

// ChargeResult is the gateway's verdict on a charge attempt
type ChargeResult struct {
	Success       bool   `json:"success"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// Gateway is the external payment processor. The real processor lives
// outside this service; implementations translate our charge requests to
// whatever the provider speaks.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// mockGateway approves every charge except references carrying a decline
// marker, which lets the decline path be driven end to end in development.
type mockGateway struct{}

// NewMockGateway creates the development/test payment gateway
func NewMockGateway() Gateway {
	return &mockGateway{}
}

const declineMarker = "DECLINE"

func (g *mockGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if strings.HasPrefix(strings.ToUpper(req.Reference), declineMarker) {
		return &ChargeResult{
			Success:       false,
			FailureReason: "card declined by issuer",
		}, nil
	}

	return &ChargeResult{Success: true}, nil
}
