package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/komoralink/komora/cart"
	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/session"
)

// Resetter is any in-memory cache dropped on logout, listing pagers for instance.
type Resetter interface {
	Reset()
}

// CurrentBusiness is the business the user is working on.
type CurrentBusiness struct {
	mu       sync.RWMutex
	business *dto.Business
}

func (c *CurrentBusiness) Set(b dto.Business) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.business = &b
}

// Get returns the selected business and whether one is selected.
func (c *CurrentBusiness) Get() (dto.Business, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.business == nil {
		return dto.Business{}, false
	}
	return *c.business, true
}

func (c *CurrentBusiness) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.business = nil
}

func (c *CurrentBusiness) Reset() {
	c.Clear()
}

// App holds the process-wide client state and owns its teardown.
type App struct {
	Session  *session.Manager
	Business *CurrentBusiness
	Cart     *cart.Cart

	logger    *zap.Logger
	mu        sync.Mutex
	resetters []Resetter
}

func NewApp(sess *session.Manager, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		Session:  sess,
		Business: &CurrentBusiness{},
		Cart:     cart.New(),
		logger:   logger,
	}
}

// Register adds caches to be reset on logout.
func (a *App) Register(r ...Resetter) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resetters = append(a.resetters, r...)
}

func (a *App) registered() []Resetter {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Resetter(nil), a.resetters...)
}

// Logout tears down every piece of client state. Steps run in order; if any of them fails the
// force-clear path wipes the in-memory state and the whole store, and the step errors are returned.
func (a *App) Logout(ctx context.Context) error {
	steps := []step{
		{"cart", func() error { a.Cart.Clear(); return nil }},
		{"business", func() error { a.Business.Clear(); return nil }},
		{"caches", func() error {
			for _, r := range a.registered() {
				r.Reset()
			}
			return nil
		}},
		{"session", func() error { return a.Session.Clear(ctx) }},
	}

	var errs []error
	for _, st := range steps {
		if err := runStep(st.name, st.run); err != nil {
			a.logger.Warn("logout step failed", zap.String("step", st.name), zap.Error(err))
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		a.logger.Info("logged out")
		return nil
	}

	a.forceClear(ctx)
	return errors.Join(errs...)
}

func (a *App) forceClear(ctx context.Context) {
	a.logger.Warn("forcing state clear")
	wipe := []step{
		{"cart", func() error { a.Cart.Reset(); return nil }},
		{"business", func() error { a.Business.Clear(); return nil }},
	}
	for _, r := range a.registered() {
		wipe = append(wipe, step{"caches", func() error { r.Reset(); return nil }})
	}
	wipe = append(wipe, step{"session store", func() error { return a.Session.ForceClear(ctx) }})

	for _, st := range wipe {
		if err := runStep(st.name, st.run); err != nil {
			a.logger.Error("force clear step failed", zap.String("step", st.name), zap.Error(err))
		}
	}
}

type step struct {
	name string
	run  func() error
}

func runStep(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("logout %s: panic: %v", name, r)
		}
	}()
	if err := fn(); err != nil {
		return fmt.Errorf("logout %s: %w", name, err)
	}
	return nil
}
