// Package repo adapts every collaborator call into the uniform result
// channel protocol consumed by the screen stores. Each operation returns a
// one-shot channel emitting Loading followed by exactly one terminal
// envelope; collaborator failures and precondition violations both surface
// as Error envelopes, never as faults.
package repo

import (
	"context"
	"io"

	"github.com/lumenshop/storefront/internal/app/domain/cart"
	"github.com/lumenshop/storefront/internal/app/domain/catalog"
	"github.com/lumenshop/storefront/internal/app/domain/order"
	"github.com/lumenshop/storefront/internal/app/domain/user"
	"github.com/lumenshop/storefront/internal/app/remote"
	"github.com/lumenshop/storefront/pkg/logger"
	"github.com/lumenshop/storefront/pkg/result"
)

const (
	homeCategoryLimit = 7
	homeProductLimit  = 10
)

// Repo is the adapter boundary between the screen stores and the remote
// collaborators.
type Repo interface {
	Register(ctx context.Context, profile user.Profile, password string) *result.Channel[string]
	Login(ctx context.Context, email, password string) *result.Channel[string]
	GetUser(ctx context.Context, id string) *result.Channel[user.Record]
	UpdateUser(ctx context.Context, rec user.Record) *result.Channel[string]
	UploadProfileImage(ctx context.Context, filename string, contents io.Reader) *result.Channel[string]

	GetCategoriesLimited(ctx context.Context) *result.Channel[[]catalog.Category]
	GetAllCategories(ctx context.Context) *result.Channel[[]catalog.Category]
	GetProductsLimited(ctx context.Context) *result.Channel[[]catalog.Product]
	GetAllProducts(ctx context.Context) *result.Channel[[]catalog.Product]
	GetProduct(ctx context.Context, id string) *result.Channel[catalog.Product]
	GetProducts(ctx context.Context, ids []string) *result.Channel[[]catalog.Product]
	GetCategoryItems(ctx context.Context, category string) *result.Channel[[]catalog.Product]
	GetBanners(ctx context.Context) *result.Channel[[]catalog.Banner]
	SearchProducts(ctx context.Context, query string) *result.Channel[[]catalog.Product]

	AddToCart(ctx context.Context, item cart.Item) *result.Channel[string]
	GetCart(ctx context.Context) *result.Channel[[]cart.Item]
	ClearCart(ctx context.Context) *result.Channel[string]
	AddToFavorites(ctx context.Context, product catalog.Product) *result.Channel[string]
	GetFavorites(ctx context.Context) *result.Channel[[]catalog.Product]
	GetSuggestedProducts(ctx context.Context) *result.Channel[[]catalog.Product]

	GetCheckout(ctx context.Context, productID string) *result.Channel[catalog.Product]
	PlaceOrder(ctx context.Context, o order.Order) *result.Channel[string]
	FetchPaymentIntent(ctx context.Context, amount int) *result.Channel[string]
}

type repo struct {
	auth    remote.Auth
	docs    remote.Documents
	objects remote.ObjectStorage
	intents remote.PaymentIntents
	log     *logger.Logger
}

// New constructs the adapter layer over the four collaborators.
func New(auth remote.Auth, docs remote.Documents, objects remote.ObjectStorage, intents remote.PaymentIntents, log *logger.Logger) Repo {
	if log == nil {
		log = logger.NewDefault("repo")
	}
	return &repo{
		auth:    auth,
		docs:    docs,
		objects: objects,
		intents: intents,
		log:     log,
	}
}

// currentUser returns the signed-in user id, or "" when signed out.
// Operations that need one convert the absence into an Error envelope.
func (r *repo) currentUser() string {
	return r.auth.CurrentUserID()
}

const errSignInRequired = "sign in required"
