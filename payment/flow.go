package payment

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/komoralink/komora/client"
	"github.com/komoralink/komora/dto"
)

type Step int

const (
	StepSelectMethod Step = iota
	StepEnterDetails
	StepProcessing
	StepSucceeded
	StepFailed
)

func (s Step) String() string {
	switch s {
	case StepSelectMethod:
		return "select_method"
	case StepEnterDetails:
		return "enter_details"
	case StepProcessing:
		return "processing"
	case StepSucceeded:
		return "succeeded"
	case StepFailed:
		return "failed"
	}
	return "unknown"
}

var (
	ErrNotPayable    = errors.New("payment: order is not awaiting payment")
	ErrInvalidStep   = errors.New("payment: action not allowed at this step")
	ErrUnknownMethod = errors.New("payment: unknown method")
)

const (
	MessageSuccess   = "Paiement effectué."
	MessageNoBalance = "Solde insuffisant. Rechargez votre portefeuille pour continuer."
	// TopUpRoute is where SuggestTopUp sends the user.
	TopUpRoute = "/wallet"
)

// OrderPayer is the part of the API the flow talks to. *client.Client implements it.
type OrderPayer interface {
	PayOrder(ctx context.Context, id string, req dto.PayOrderRequest) (dto.PaymentResult, error)
	GetOrder(ctx context.Context, id string) (dto.Order, error)
}

// Outcome is the terminal state of a payment attempt.
type Outcome struct {
	Order        dto.Order
	Reference    string
	ClientSecret string
	Message      string
	// SuggestTopUp is set when the wallet balance did not cover the order.
	SuggestTopUp bool
}

// Flow walks one order through method selection, details and submission.
type Flow struct {
	api    OrderPayer
	logger *zap.Logger

	mu      sync.Mutex
	order   dto.Order
	step    Step
	method  dto.PaymentMethod
	phone   string
	outcome Outcome
}

func NewFlow(api OrderPayer, order dto.Order, logger *zap.Logger) (*Flow, error) {
	if order.Status != dto.OrderPendingPayment {
		return nil, ErrNotPayable
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{api: api, order: order, logger: logger}, nil
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *Flow) Method() dto.PaymentMethod {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.method
}

func (f *Flow) Outcome() Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outcome
}

func (f *Flow) SelectMethod(m dto.PaymentMethod) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepSelectMethod && f.step != StepEnterDetails {
		return ErrInvalidStep
	}
	if !m.Valid() {
		return ErrUnknownMethod
	}
	f.method = m
	f.step = StepEnterDetails
	return nil
}

// SetPhone records the mobile money number.
func (f *Flow) SetPhone(phone string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepEnterDetails {
		return ErrInvalidStep
	}
	f.phone = phone
	return nil
}

// Back returns to method selection.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepEnterDetails {
		return ErrInvalidStep
	}
	f.step = StepSelectMethod
	return nil
}

// Retry reopens the details step after a failure.
func (f *Flow) Retry() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepFailed {
		return ErrInvalidStep
	}
	f.step = StepEnterDetails
	f.outcome = Outcome{}
	return nil
}

func (f *Flow) request() dto.PayOrderRequest {
	req := dto.PayOrderRequest{Method: f.method}
	if f.method == dto.PaymentKartaPay {
		req.PhoneNumber = dto.NormalizePhone(f.phone)
	}
	return req
}

// Submit pays the order. Validation errors keep the flow on the details step and send nothing.
// On success the order is reloaded so the caller sees its new status.
func (f *Flow) Submit(ctx context.Context) (Outcome, error) {
	f.mu.Lock()
	if f.step != StepEnterDetails {
		f.mu.Unlock()
		return Outcome{}, ErrInvalidStep
	}
	req := f.request()
	if err := req.Validate(); err != nil {
		f.mu.Unlock()
		return Outcome{Message: client.UserMessage(err)}, err
	}
	f.step = StepProcessing
	orderID := f.order.ID
	f.mu.Unlock()

	res, err := f.api.PayOrder(ctx, orderID, req)
	if err != nil {
		return f.fail(err)
	}

	order := res.Order
	if reloaded, err := f.api.GetOrder(ctx, orderID); err != nil {
		f.logger.Warn("failed to reload paid order", zap.String("order_id", orderID), zap.Error(err))
	} else {
		order = reloaded
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.order = order
	f.step = StepSucceeded
	f.outcome = Outcome{
		Order:        order,
		Reference:    res.Reference,
		ClientSecret: res.ClientSecret,
		Message:      MessageSuccess,
	}
	f.logger.Info("order paid", zap.String("order_id", orderID), zap.String("method", string(req.Method)))
	return f.outcome, nil
}

func (f *Flow) fail(err error) (Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := Outcome{Order: f.order, Message: client.UserMessage(err)}
	if client.IsInsufficientBalance(err) {
		out.SuggestTopUp = true
		out.Message = MessageNoBalance
	}
	f.step = StepFailed
	f.outcome = out
	f.logger.Info("payment failed", zap.String("order_id", f.order.ID), zap.Bool("top_up", out.SuggestTopUp), zap.Error(err))
	return out, err
}
