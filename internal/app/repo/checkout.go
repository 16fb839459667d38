package repo

import (
	"context"
	"time"

	"github.com/lumenshop/storefront/internal/app/domain/catalog"
	"github.com/lumenshop/storefront/internal/app/domain/order"
	"github.com/lumenshop/storefront/internal/app/remote"
	"github.com/lumenshop/storefront/pkg/result"
)

func (r *repo) GetCheckout(ctx context.Context, productID string) *result.Channel[catalog.Product] {
	return result.Run(ctx, func(ctx context.Context) (catalog.Product, error) {
		doc, err := r.docs.Get(ctx, remote.ProductsCollection, productID)
		if err != nil {
			return catalog.Product{}, err
		}
		return decodeProduct(doc)
	})
}

func (r *repo) PlaceOrder(ctx context.Context, o order.Order) *result.Channel[string] {
	uid := r.currentUser()
	if uid == "" {
		return result.Fail[string](errSignInRequired)
	}
	return result.Run(ctx, func(ctx context.Context) (string, error) {
		o.UserID = uid
		if o.Timestamp == 0 {
			o.Timestamp = time.Now().UnixMilli()
		}
		id, err := r.docs.Add(ctx, remote.OrdersCollection, o)
		if err != nil {
			return "", err
		}
		r.log.WithField("order_id", id).WithField("user_id", uid).Info("order placed")
		return id, nil
	})
}

func (r *repo) FetchPaymentIntent(ctx context.Context, amount int) *result.Channel[string] {
	return result.Run(ctx, func(ctx context.Context) (string, error) {
		return r.intents.Create(ctx, amount)
	})
}
