package repo

import (
	"context"

	"github.com/lumenshop/storefront/internal/app/domain/cart"
	"github.com/lumenshop/storefront/internal/app/domain/catalog"
	"github.com/lumenshop/storefront/internal/app/remote"
	"github.com/lumenshop/storefront/pkg/result"
)

func (r *repo) AddToCart(ctx context.Context, item cart.Item) *result.Channel[string] {
	uid := r.currentUser()
	if uid == "" {
		return result.Fail[string](errSignInRequired)
	}
	return result.Run(ctx, func(ctx context.Context) (string, error) {
		item.UserID = uid
		if _, err := r.docs.Add(ctx, remote.CartItemsCollection, item); err != nil {
			return "", err
		}
		return "added to cart successfully", nil
	})
}

func (r *repo) GetCart(ctx context.Context) *result.Channel[[]cart.Item] {
	uid := r.currentUser()
	if uid == "" {
		return result.Fail[[]cart.Item](errSignInRequired)
	}
	return result.Run(ctx, func(ctx context.Context) ([]cart.Item, error) {
		filter := &remote.Filter{Field: "userId", Value: uid}
		docs, err := r.docs.Query(ctx, remote.CartItemsCollection, filter, 0)
		if err != nil {
			return nil, err
		}
		return decodeCartItems(docs)
	})
}

// ClearCart deletes every cart item with an independent call per item.
// There is no ordering among the deletes and no rollback: a partially
// cleared cart on failure is accepted best-effort behaviour.
func (r *repo) ClearCart(ctx context.Context) *result.Channel[string] {
	uid := r.currentUser()
	if uid == "" {
		return result.Fail[string](errSignInRequired)
	}
	return result.Run(ctx, func(ctx context.Context) (string, error) {
		filter := &remote.Filter{Field: "userId", Value: uid}
		docs, err := r.docs.Query(ctx, remote.CartItemsCollection, filter, 0)
		if err != nil {
			return "", err
		}
		for _, doc := range docs {
			if err := r.docs.Delete(ctx, remote.CartItemsCollection, doc.ID); err != nil {
				r.log.WithError(err).WithField("cart_item", doc.ID).Warn("cart item delete failed")
			}
		}
		return "cart cleared", nil
	})
}

func (r *repo) AddToFavorites(ctx context.Context, product catalog.Product) *result.Channel[string] {
	uid := r.currentUser()
	if uid == "" {
		return result.Fail[string](errSignInRequired)
	}
	return result.Run(ctx, func(ctx context.Context) (string, error) {
		entry := struct {
			catalog.Product
			UserID string `json:"userId"`
		}{Product: product, UserID: uid}
		if _, err := r.docs.Add(ctx, remote.FavoritesCollection, entry); err != nil {
			return "", err
		}
		return "added to favorites successfully", nil
	})
}

func (r *repo) GetFavorites(ctx context.Context) *result.Channel[[]catalog.Product] {
	uid := r.currentUser()
	if uid == "" {
		return result.Fail[[]catalog.Product](errSignInRequired)
	}
	return result.Run(ctx, func(ctx context.Context) ([]catalog.Product, error) {
		filter := &remote.Filter{Field: "userId", Value: uid}
		docs, err := r.docs.Query(ctx, remote.FavoritesCollection, filter, 0)
		if err != nil {
			return nil, err
		}
		return decodeProducts(docs)
	})
}

// GetSuggestedProducts serves the suggestion rail from the user's
// favorites, matching the landing view's behaviour.
func (r *repo) GetSuggestedProducts(ctx context.Context) *result.Channel[[]catalog.Product] {
	return r.GetFavorites(ctx)
}
