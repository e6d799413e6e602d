// Package frontend wires the client core the screens talk to: the API client, the persisted
// session, the application state and the list pagers.
package frontend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/komoralink/komora/checkout"
	"github.com/komoralink/komora/client"
	"github.com/komoralink/komora/config"
	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/listing"
	"github.com/komoralink/komora/logging"
	"github.com/komoralink/komora/onboarding"
	"github.com/komoralink/komora/payment"
	"github.com/komoralink/komora/session"
	"github.com/komoralink/komora/state"
)

type App struct {
	API   *client.Client
	State *state.App

	// Businesses filters the sector in memory; its counts follow the server pagination.
	Businesses *listing.Pager[dto.Business]
	Products   *listing.Pager[dto.Product]
	Orders     *listing.Pager[dto.Order]
	Checkout   *checkout.Orchestrator

	logger *zap.Logger
}

// New builds the client core on top of store. Extra client options are applied after the
// configured ones.
func New(cfg config.ClientConfig, store session.Store, logger *zap.Logger, opts ...client.Option) *App {
	logger = logging.OrNop(logger)

	sess := session.NewManager(store, logger.Named("session"))
	st := state.NewApp(sess, logger.Named("state"))

	clientOpts := append([]client.Option{
		client.WithTokenSource(sess),
		client.WithLogger(logger.Named("api")),
		client.WithTimeout(cfg.RequestTimeout),
	}, opts...)
	api := client.New(cfg.APIBaseURL, clientOpts...)

	a := &App{
		API:    api,
		State:  st,
		logger: logger,
	}
	a.Businesses = listing.NewPager(api.ListBusinesses, cfg.PageSize,
		listing.WithLogger[dto.Business](logger.Named("businesses")),
		listing.WithDebounce[dto.Business](cfg.SearchDebounce),
		listing.WithClientFilter(func(b dto.Business) string { return b.ActivitySector }),
	)
	a.Products = listing.NewPager(func(ctx context.Context, q listing.Query) (*dto.ListResponse[dto.Product], error) {
		return api.ListProducts(ctx, q, "")
	}, cfg.PageSize,
		listing.WithLogger[dto.Product](logger.Named("products")),
		listing.WithDebounce[dto.Product](cfg.SearchDebounce),
	)
	a.Orders = listing.NewPager(func(ctx context.Context, q listing.Query) (*dto.ListResponse[dto.Order], error) {
		return api.ListOrders(ctx, q, a.sellerScope())
	}, cfg.PageSize, listing.WithLogger[dto.Order](logger.Named("orders")))
	a.Checkout = checkout.New(api, st.Cart, logger.Named("checkout"))

	st.Register(a.Businesses, a.Products, a.Orders)
	return a
}

// sellerScope lists the orders received by the current business, or the user's purchases when
// no business is selected.
func (a *App) sellerScope() string {
	if b, ok := a.State.Business.Get(); ok {
		return b.ID
	}
	return ""
}

// Start restores a stored session. It reports whether the user is still logged in.
func (a *App) Start(ctx context.Context) (bool, error) {
	ok, err := a.State.Session.Restore(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to restore session: %w", err)
	}
	return ok, nil
}

func (a *App) Login(ctx context.Context, token string, profile dto.UserProfile) error {
	return a.State.Session.Login(ctx, token, profile)
}

// SelectBusiness loads a business and makes it the current one.
func (a *App) SelectBusiness(ctx context.Context, id string) (dto.Business, error) {
	b, err := a.API.GetBusiness(ctx, id)
	if err != nil {
		return dto.Business{}, err
	}
	a.State.Business.Set(b)
	return b, nil
}

func (a *App) AddMenuToCart(ctx context.Context, menuID string, qty int) (dto.Menu, error) {
	menu, err := a.API.GetMenu(ctx, menuID)
	if err != nil {
		return dto.Menu{}, err
	}
	a.State.Cart.AddMenu(menu, qty)
	return menu, nil
}

func (a *App) PayOrder(order dto.Order) (*payment.Flow, error) {
	return payment.NewFlow(a.API, order, a.logger.Named("payment"))
}

func (a *App) NewBusinessWizard() *onboarding.Wizard {
	return onboarding.NewWizard(a.API, a.State.Business, a.logger.Named("onboarding"))
}

func (a *App) UpdateBusiness(ctx context.Context, id string, req dto.UpdateBusinessRequest) (dto.Business, error) {
	return onboarding.UpdateBusiness(ctx, a.API, a.State.Business, id, req)
}

// Logout clears every piece of client state.
func (a *App) Logout(ctx context.Context) error {
	return a.State.Logout(ctx)
}
