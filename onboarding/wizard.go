package onboarding

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/state"
)

type Step int

const (
	StepType Step = iota
	StepIdentity
	StepContact
	StepMedia
	StepReview
)

// stepFields are the request fields each step is responsible for.
var stepFields = map[Step][]string{
	StepType:     {"type"},
	StepIdentity: {"name", "activitySector"},
	StepContact:  {"address", "phone"},
	StepMedia:    {"logoUrl", "coverImageUrl"},
}

var (
	ErrNotReady   = errors.New("onboarding: form is not on the review step")
	ErrFirstStep  = errors.New("onboarding: already on the first step")
	ErrSubmitting = errors.New("onboarding: already submitting")
)

// BusinessCreator creates a business. *client.Client implements it.
type BusinessCreator interface {
	CreateBusiness(ctx context.Context, req dto.CreateBusinessRequest) (dto.Business, error)
}

// Wizard is the multi-step business creation form.
type Wizard struct {
	api     BusinessCreator
	current *state.CurrentBusiness
	logger  *zap.Logger

	mu         sync.Mutex
	step       Step
	form       dto.CreateBusinessRequest
	submitting bool
}

func NewWizard(api BusinessCreator, current *state.CurrentBusiness, logger *zap.Logger) *Wizard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Wizard{api: api, current: current, logger: logger}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Form returns the request built so far.
func (w *Wizard) Form() dto.CreateBusinessRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

func (w *Wizard) SetType(t dto.BusinessType) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.Type = dto.BusinessType(strings.ToUpper(string(t)))
}

func (w *Wizard) SetIdentity(name, sector, description string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.Name = strings.TrimSpace(name)
	w.form.ActivitySector = strings.TrimSpace(sector)
	w.form.Description = strings.TrimSpace(description)
}

func (w *Wizard) SetContact(address, phone string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.Address = strings.TrimSpace(address)
	w.form.Phone = dto.NormalizePhone(phone)
}

func (w *Wizard) SetMedia(logoURL, coverURL string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.LogoURL = strings.TrimSpace(logoURL)
	w.form.CoverImageURL = strings.TrimSpace(coverURL)
}

// validateStep keeps only the failures of the fields owned by s.
func (w *Wizard) validateStep(s Step) error {
	err := w.form.Validate()
	var verr *dto.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	fields := make(map[string]string)
	for _, f := range stepFields[s] {
		if msg, ok := verr.Fields[f]; ok {
			fields[f] = msg
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &dto.ValidationError{Fields: fields}
}

// Next validates the current step and advances.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepReview {
		return nil
	}
	if err := w.validateStep(w.step); err != nil {
		return err
	}
	w.step++
	return nil
}

func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepType {
		return ErrFirstStep
	}
	w.step--
	return nil
}

// Submit creates the business from the review step and selects it as the current business.
func (w *Wizard) Submit(ctx context.Context) (dto.Business, error) {
	w.mu.Lock()
	if w.step != StepReview {
		w.mu.Unlock()
		return dto.Business{}, ErrNotReady
	}
	if w.submitting {
		w.mu.Unlock()
		return dto.Business{}, ErrSubmitting
	}
	req := w.form
	if err := req.Validate(); err != nil {
		w.mu.Unlock()
		return dto.Business{}, err
	}
	w.submitting = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.submitting = false
		w.mu.Unlock()
	}()

	b, err := w.api.CreateBusiness(ctx, req)
	if err != nil {
		w.logger.Info("business creation failed", zap.String("type", string(req.Type)), zap.Error(err))
		return dto.Business{}, err
	}
	w.current.Set(b)
	w.logger.Info("business created", zap.String("business_id", b.ID), zap.String("type", string(b.Type)))
	return b, nil
}
