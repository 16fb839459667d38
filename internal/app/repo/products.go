package repo

import (
	"context"
	"strings"

	"github.com/lumenshop/storefront/internal/app/domain/catalog"
	"github.com/lumenshop/storefront/internal/app/remote"
	"github.com/lumenshop/storefront/pkg/result"
)

func (r *repo) GetCategoriesLimited(ctx context.Context) *result.Channel[[]catalog.Category] {
	return result.Run(ctx, func(ctx context.Context) ([]catalog.Category, error) {
		docs, err := r.docs.Query(ctx, remote.CategoriesCollection, nil, homeCategoryLimit)
		if err != nil {
			return nil, err
		}
		return decodeCategories(docs)
	})
}

func (r *repo) GetAllCategories(ctx context.Context) *result.Channel[[]catalog.Category] {
	return result.Run(ctx, func(ctx context.Context) ([]catalog.Category, error) {
		docs, err := r.docs.Query(ctx, remote.CategoriesCollection, nil, 0)
		if err != nil {
			return nil, err
		}
		return decodeCategories(docs)
	})
}

func (r *repo) GetProductsLimited(ctx context.Context) *result.Channel[[]catalog.Product] {
	return result.Run(ctx, func(ctx context.Context) ([]catalog.Product, error) {
		docs, err := r.docs.Query(ctx, remote.ProductsCollection, nil, homeProductLimit)
		if err != nil {
			return nil, err
		}
		return decodeProducts(docs)
	})
}

func (r *repo) GetAllProducts(ctx context.Context) *result.Channel[[]catalog.Product] {
	return result.Run(ctx, func(ctx context.Context) ([]catalog.Product, error) {
		docs, err := r.docs.Query(ctx, remote.ProductsCollection, nil, 0)
		if err != nil {
			return nil, err
		}
		return decodeProducts(docs)
	})
}

func (r *repo) GetProduct(ctx context.Context, id string) *result.Channel[catalog.Product] {
	return result.Run(ctx, func(ctx context.Context) (catalog.Product, error) {
		doc, err := r.docs.Get(ctx, remote.ProductsCollection, id)
		if err != nil {
			return catalog.Product{}, err
		}
		return decodeProduct(doc)
	})
}

// GetProducts resolves a list of product ids through parallel sub-requests.
// The first failing lookup fails the whole group; an empty id list yields
// an empty result without touching the document store.
func (r *repo) GetProducts(ctx context.Context, ids []string) *result.Channel[[]catalog.Product] {
	return result.FanOut(ctx, ids, func(ctx context.Context, id string) (catalog.Product, error) {
		doc, err := r.docs.Get(ctx, remote.ProductsCollection, id)
		if err != nil {
			return catalog.Product{}, err
		}
		return decodeProduct(doc)
	})
}

func (r *repo) GetCategoryItems(ctx context.Context, category string) *result.Channel[[]catalog.Product] {
	return result.Run(ctx, func(ctx context.Context) ([]catalog.Product, error) {
		filter := &remote.Filter{Field: "category", Value: category}
		docs, err := r.docs.Query(ctx, remote.ProductsCollection, filter, 0)
		if err != nil {
			return nil, err
		}
		return decodeProducts(docs)
	})
}

func (r *repo) GetBanners(ctx context.Context) *result.Channel[[]catalog.Banner] {
	return result.Run(ctx, func(ctx context.Context) ([]catalog.Banner, error) {
		docs, err := r.docs.Query(ctx, remote.BannersCollection, nil, 0)
		if err != nil {
			return nil, err
		}
		return decodeBanners(docs)
	})
}

// SearchProducts matches the query as a case-insensitive substring of the
// product name, preserving catalog order. The document store has no text
// search, so the whole catalog is fetched and filtered client-side.
func (r *repo) SearchProducts(ctx context.Context, query string) *result.Channel[[]catalog.Product] {
	normalized := strings.ToLower(strings.TrimSpace(query))
	return result.Run(ctx, func(ctx context.Context) ([]catalog.Product, error) {
		docs, err := r.docs.Query(ctx, remote.ProductsCollection, nil, 0)
		if err != nil {
			return nil, err
		}
		products, err := decodeProducts(docs)
		if err != nil {
			return nil, err
		}
		matched := make([]catalog.Product, 0, len(products))
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), normalized) {
				matched = append(matched, p)
			}
		}
		return matched, nil
	})
}
