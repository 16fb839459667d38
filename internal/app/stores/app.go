package stores

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/lumenshop/storefront/infra/payments"
	"github.com/lumenshop/storefront/internal/app/domain/cart"
	"github.com/lumenshop/storefront/internal/app/domain/catalog"
	"github.com/lumenshop/storefront/internal/app/domain/order"
	"github.com/lumenshop/storefront/internal/app/domain/user"
	"github.com/lumenshop/storefront/internal/app/metrics"
	"github.com/lumenshop/storefront/internal/app/repo"
	"github.com/lumenshop/storefront/pkg/logger"
	"github.com/lumenshop/storefront/pkg/result"
)

// App is the composition root of the screen state layer: one store and one
// trigger per operation, all fed by the repo adapters. Stores backing
// auto-started operations begin loading; user-gated ones begin idle.
type App struct {
	repo repo.Repo
	log  *logger.Logger

	SignUp        *Store[string]
	Login         *Store[string]
	Profile       *Store[user.Record]
	UpdateProfile *Store[string]
	ProfileImage  *Store[string]

	AllProducts   *Store[[]catalog.Product]
	AllCategories *Store[[]catalog.Category]
	ProductByID   *Store[catalog.Product]
	ProductsByIDs *Store[[]catalog.Product]
	CategoryItems *Store[[]catalog.Product]
	Search        *Store[[]catalog.Product]
	Suggested     *Store[[]catalog.Product]

	CartItems      *Store[[]cart.Item]
	CartAdd        *Store[string]
	CartClear      *Store[string]
	FavoriteAdd    *Store[string]
	Favorites      *Store[[]catalog.Product]
	CartCount      *Store[int]

	Checkout      *Store[catalog.Product]
	OrderResult   *Store[string]
	PaymentIntent *Store[string]
	Payment       *Store[string]

	homeCategories *Store[[]catalog.Category]
	homeProducts   *Store[[]catalog.Product]
	homeBanners    *Store[[]catalog.Banner]
	Home           *Home
}

// NewApp constructs every store and auto-starts the home aggregate.
func NewApp(ctx context.Context, r repo.Repo, log *logger.Logger) *App {
	if log == nil {
		log = logger.NewDefault("stores")
	}
	a := &App{
		repo: r,
		log:  log,

		SignUp:        New[string](false),
		Login:         New[string](false),
		Profile:       New[user.Record](false),
		UpdateProfile: New[string](false),
		ProfileImage:  New[string](false),

		AllProducts:   New[[]catalog.Product](false),
		AllCategories: New[[]catalog.Category](false),
		ProductByID:   New[catalog.Product](false),
		ProductsByIDs: New[[]catalog.Product](false),
		CategoryItems: New[[]catalog.Product](false),
		Search:        New[[]catalog.Product](false),
		Suggested:     New[[]catalog.Product](false),

		CartItems:   New[[]cart.Item](false),
		CartAdd:     New[string](false),
		CartClear:   New[string](false),
		FavoriteAdd: New[string](false),
		Favorites:   New[[]catalog.Product](false),
		CartCount:   New[int](false),

		Checkout:      New[catalog.Product](false),
		OrderResult:   New[string](false),
		PaymentIntent: New[string](false),
		Payment:       New[string](false),

		homeCategories: New[[]catalog.Category](true),
		homeProducts:   New[[]catalog.Product](true),
		homeBanners:    New[[]catalog.Banner](true),
	}
	a.Home = NewHome(a.homeCategories, a.homeProducts, a.homeBanners)
	a.loadHome(ctx)
	return a
}

// consume reduces ch into st in the background and records the outcome.
func consume[T any](ctx context.Context, op string, st *Store[T], ch *result.Channel[T]) {
	start := time.Now()
	go func() {
		st.Consume(ctx, ch)
		snap := st.Snapshot()
		status := "success"
		switch {
		case snap.IsLoading:
			status = "cancelled"
		case snap.ErrorMessage != "":
			status = "error"
		}
		metrics.ObserveOperation(op, status, time.Since(start))
	}()
}

// loadHome starts the three landing operations feeding the combinator.
func (a *App) loadHome(ctx context.Context) {
	consume(ctx, "home_categories", a.homeCategories, a.repo.GetCategoriesLimited(ctx))
	consume(ctx, "home_products", a.homeProducts, a.repo.GetProductsLimited(ctx))
	consume(ctx, "home_banners", a.homeBanners, a.repo.GetBanners(ctx))
}

// RefreshHome re-runs the landing operations. Stale payloads stay visible
// under the loading overlay per the reduction rules.
func (a *App) RefreshHome(ctx context.Context) { a.loadHome(ctx) }

func (a *App) CreateUser(ctx context.Context, profile user.Profile, password string) {
	consume(ctx, "sign_up", a.SignUp, a.repo.Register(ctx, profile, password))
}

func (a *App) LoginUser(ctx context.Context, email, password string) {
	consume(ctx, "login", a.Login, a.repo.Login(ctx, email, password))
}

func (a *App) LoadUser(ctx context.Context, id string) {
	consume(ctx, "get_user", a.Profile, a.repo.GetUser(ctx, id))
}

func (a *App) UpdateUser(ctx context.Context, rec user.Record) {
	consume(ctx, "update_user", a.UpdateProfile, a.repo.UpdateUser(ctx, rec))
}

func (a *App) UploadProfileImage(ctx context.Context, filename string, contents io.Reader) {
	consume(ctx, "upload_profile_image", a.ProfileImage, a.repo.UploadProfileImage(ctx, filename, contents))
}

func (a *App) LoadAllProducts(ctx context.Context) {
	consume(ctx, "get_all_products", a.AllProducts, a.repo.GetAllProducts(ctx))
}

func (a *App) LoadAllCategories(ctx context.Context) {
	consume(ctx, "get_all_categories", a.AllCategories, a.repo.GetAllCategories(ctx))
}

func (a *App) LoadProduct(ctx context.Context, id string) {
	consume(ctx, "get_product", a.ProductByID, a.repo.GetProduct(ctx, id))
}

func (a *App) LoadProducts(ctx context.Context, ids []string) {
	consume(ctx, "get_products_by_ids", a.ProductsByIDs, a.repo.GetProducts(ctx, ids))
}

func (a *App) LoadCategoryItems(ctx context.Context, category string) {
	consume(ctx, "get_category_items", a.CategoryItems, a.repo.GetCategoryItems(ctx, category))
}

// SearchProducts runs a catalog search. An empty query resets the result
// snapshot directly without any collaborator call.
func (a *App) SearchProducts(ctx context.Context, query string) {
	if strings.TrimSpace(query) == "" {
		a.Search.Reset([]catalog.Product{})
		return
	}
	consume(ctx, "search_products", a.Search, a.repo.SearchProducts(ctx, query))
}

func (a *App) LoadSuggestedProducts(ctx context.Context) {
	consume(ctx, "get_suggested", a.Suggested, a.repo.GetSuggestedProducts(ctx))
}

func (a *App) AddToCart(ctx context.Context, item cart.Item) {
	consume(ctx, "add_to_cart", a.CartAdd, a.repo.AddToCart(ctx, item))
}

func (a *App) LoadCart(ctx context.Context) {
	consume(ctx, "get_cart", a.CartItems, a.repo.GetCart(ctx))
}

func (a *App) ClearCart(ctx context.Context) {
	consume(ctx, "clear_cart", a.CartClear, a.repo.ClearCart(ctx))
}

func (a *App) AddToFavorites(ctx context.Context, product catalog.Product) {
	consume(ctx, "add_to_favorites", a.FavoriteAdd, a.repo.AddToFavorites(ctx, product))
}

func (a *App) LoadFavorites(ctx context.Context) {
	consume(ctx, "get_favorites", a.Favorites, a.repo.GetFavorites(ctx))
}

func (a *App) LoadCheckout(ctx context.Context, productID string) {
	consume(ctx, "get_checkout", a.Checkout, a.repo.GetCheckout(ctx, productID))
}

func (a *App) PlaceOrder(ctx context.Context, o order.Order) {
	consume(ctx, "place_order", a.OrderResult, a.repo.PlaceOrder(ctx, o))
}

// SetCartCount publishes the live cart size. Fed by a collection watcher
// wired in the composition root.
func (a *App) SetCartCount(n int) {
	a.CartCount.Replace(Snapshot[int]{Payload: n})
}

// PayWithSheet fetches a payment intent and presents the payment sheet.
// The intent fetch reduces into PaymentIntent; the sheet outcome reduces
// into Payment.
func (a *App) PayWithSheet(ctx context.Context, amount int, sheet payments.PaymentSheet, cfg payments.SheetConfig) {
	start := time.Now()
	a.Payment.Apply(result.Loading[string]())
	ch := a.repo.FetchPaymentIntent(ctx, amount)
	go func() {
		var secret string
		for {
			select {
			case <-ctx.Done():
				return
			case env, ok := <-ch.Events():
				if !ok {
					if secret == "" {
						return
					}
					sheet.Present(ctx, secret, cfg, func(err error) {
						a.finishPayment(ctx, "pay_with_sheet", start, err)
					})
					return
				}
				a.PaymentIntent.Apply(env)
				switch env.Kind {
				case result.KindSuccess:
					secret = env.Value
				case result.KindError:
					a.Payment.Apply(result.Failure[string](env.Message))
					metrics.ObserveOperation("pay_with_sheet", "error", time.Since(start))
					return
				}
			}
		}
	}()
}

// PayWithHostedCheckout opens the hosted checkout flow and reduces its
// callback into the Payment store.
func (a *App) PayWithHostedCheckout(ctx context.Context, co payments.HostedCheckout, opts payments.HostedOptions) {
	start := time.Now()
	a.Payment.Apply(result.Loading[string]())
	co.Open(ctx, opts, func(paymentID string, err error) {
		if err == nil && paymentID != "" {
			a.log.WithField("payment_id", paymentID).Info("hosted checkout completed")
		}
		a.finishPayment(ctx, "pay_with_hosted", start, err)
	})
}

// finishPayment reduces a payment SDK callback outcome, dropping it when
// the observation scope already ended.
func (a *App) finishPayment(ctx context.Context, op string, start time.Time, err error) {
	select {
	case <-ctx.Done():
		return
	default:
	}
	if err != nil {
		a.Payment.Apply(result.Failure[string](err.Error()))
		metrics.ObserveOperation(op, "error", time.Since(start))
		return
	}
	a.Payment.Apply(result.Success("payment completed"))
	metrics.ObserveOperation(op, "success", time.Since(start))
}

// Close shuts down the combinator's source subscriptions.
func (a *App) Close() {
	a.Home.Close()
}
