package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komoralink/komora/client"
	"github.com/komoralink/komora/dto"
)

type mockPayer struct {
	payRequests []dto.PayOrderRequest
	payErr      error
	getErr      error
	gets        int
}

func (m *mockPayer) PayOrder(_ context.Context, id string, req dto.PayOrderRequest) (dto.PaymentResult, error) {
	m.payRequests = append(m.payRequests, req)
	if m.payErr != nil {
		return dto.PaymentResult{}, m.payErr
	}
	return dto.PaymentResult{
		Order:     dto.Order{ID: id, Status: dto.OrderPending},
		Reference: "ref-1",
	}, nil
}

func (m *mockPayer) GetOrder(_ context.Context, id string) (dto.Order, error) {
	m.gets++
	if m.getErr != nil {
		return dto.Order{}, m.getErr
	}
	return dto.Order{ID: id, Status: dto.OrderConfirmed}, nil
}

func pendingOrder() dto.Order {
	return dto.Order{ID: "o1", Status: dto.OrderPendingPayment}
}

func TestNewFlowRequiresPendingPayment(t *testing.T) {
	_, err := NewFlow(&mockPayer{}, dto.Order{ID: "o1", Status: dto.OrderConfirmed}, nil)
	assert.ErrorIs(t, err, ErrNotPayable)
}

func TestWalletPaymentReloadsOrder(t *testing.T) {
	api := &mockPayer{}
	f, err := NewFlow(api, pendingOrder(), nil)
	require.NoError(t, err)
	assert.Equal(t, StepSelectMethod, f.Step())

	require.NoError(t, f.SelectMethod(dto.PaymentWallet))
	assert.Equal(t, StepEnterDetails, f.Step())

	out, err := f.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, StepSucceeded, f.Step())
	assert.Equal(t, dto.OrderConfirmed, out.Order.Status)
	assert.Equal(t, "ref-1", out.Reference)
	assert.Equal(t, MessageSuccess, out.Message)
	assert.Equal(t, 1, api.gets)
	assert.Equal(t, []dto.PayOrderRequest{{Method: dto.PaymentWallet}}, api.payRequests)
}

func TestReloadFailureKeepsPaymentResult(t *testing.T) {
	api := &mockPayer{getErr: errors.New("timeout")}
	f, err := NewFlow(api, pendingOrder(), nil)
	require.NoError(t, err)
	require.NoError(t, f.SelectMethod(dto.PaymentStripe))

	out, err := f.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, dto.OrderPending, out.Order.Status)
}

func TestMobileMoneyPhoneValidation(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
		sent    string
	}{
		{"missing", "", true, ""},
		{"too short", "12 34", true, ""},
		{"letters", "+269abc45678", true, ""},
		{"international with spaces", "+269 321 45 67", false, "+2693214567"},
		{"local with dashes", "32-14-56-78", false, "32145678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockPayer{}
			f, err := NewFlow(api, pendingOrder(), nil)
			require.NoError(t, err)
			require.NoError(t, f.SelectMethod(dto.PaymentKartaPay))
			require.NoError(t, f.SetPhone(tt.phone))

			out, err := f.Submit(context.Background())

			if tt.wantErr {
				var verr *dto.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.NotEmpty(t, out.Message)
				assert.Empty(t, api.payRequests)
				assert.Equal(t, StepEnterDetails, f.Step())
				return
			}
			require.NoError(t, err)
			require.Len(t, api.payRequests, 1)
			assert.Equal(t, tt.sent, api.payRequests[0].PhoneNumber)
		})
	}
}

func TestInsufficientBalanceSuggestsTopUp(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		topUp bool
	}{
		{
			name:  "structured code",
			err:   &client.APIError{Status: 422, Code: dto.CodeInsufficientBalance, Messages: []string{"Solde insuffisant"}},
			topUp: true,
		},
		{
			name:  "message alone is not enough",
			err:   &client.APIError{Status: 400, Messages: []string{"solde insuffisant"}},
			topUp: false,
		},
		{
			name:  "transport error",
			err:   errors.New("connection reset"),
			topUp: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockPayer{payErr: tt.err}
			f, err := NewFlow(api, pendingOrder(), nil)
			require.NoError(t, err)
			require.NoError(t, f.SelectMethod(dto.PaymentWallet))

			out, err := f.Submit(context.Background())

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.topUp, out.SuggestTopUp)
			assert.Equal(t, StepFailed, f.Step())
			assert.Zero(t, api.gets)
		})
	}
}

func TestStepGuards(t *testing.T) {
	f, err := NewFlow(&mockPayer{payErr: errors.New("down")}, pendingOrder(), nil)
	require.NoError(t, err)

	_, err = f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidStep)
	assert.ErrorIs(t, f.SetPhone("12345678"), ErrInvalidStep)
	assert.ErrorIs(t, f.SelectMethod("CASH"), ErrUnknownMethod)

	require.NoError(t, f.SelectMethod(dto.PaymentStripe))
	require.NoError(t, f.Back())
	assert.Equal(t, StepSelectMethod, f.Step())
	require.NoError(t, f.SelectMethod(dto.PaymentWallet))

	_, err = f.Submit(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, f.SelectMethod(dto.PaymentStripe), ErrInvalidStep)

	require.NoError(t, f.Retry())
	assert.Equal(t, StepEnterDetails, f.Step())
	assert.Equal(t, dto.PaymentWallet, f.Method())
	assert.Equal(t, Outcome{}, f.Outcome())
}
