package repo

import (
	"encoding/json"
	"fmt"

	"github.com/lumenshop/storefront/internal/app/domain/cart"
	"github.com/lumenshop/storefront/internal/app/domain/catalog"
	"github.com/lumenshop/storefront/internal/app/remote"
)

func decodeProduct(doc remote.Document) (catalog.Product, error) {
	var p catalog.Product
	if err := json.Unmarshal(doc.Data, &p); err != nil {
		return catalog.Product{}, fmt.Errorf("decode product %s: %w", doc.ID, err)
	}
	p.ID = doc.ID
	return p, nil
}

func decodeProducts(docs []remote.Document) ([]catalog.Product, error) {
	products := make([]catalog.Product, 0, len(docs))
	for _, doc := range docs {
		p, err := decodeProduct(doc)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func decodeCategories(docs []remote.Document) ([]catalog.Category, error) {
	categories := make([]catalog.Category, 0, len(docs))
	for _, doc := range docs {
		var c catalog.Category
		if err := json.Unmarshal(doc.Data, &c); err != nil {
			return nil, fmt.Errorf("decode category %s: %w", doc.ID, err)
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func decodeBanners(docs []remote.Document) ([]catalog.Banner, error) {
	banners := make([]catalog.Banner, 0, len(docs))
	for _, doc := range docs {
		var b catalog.Banner
		if err := json.Unmarshal(doc.Data, &b); err != nil {
			return nil, fmt.Errorf("decode banner %s: %w", doc.ID, err)
		}
		banners = append(banners, b)
	}
	return banners, nil
}

func decodeCartItems(docs []remote.Document) ([]cart.Item, error) {
	items := make([]cart.Item, 0, len(docs))
	for _, doc := range docs {
		var it cart.Item
		if err := json.Unmarshal(doc.Data, &it); err != nil {
			return nil, fmt.Errorf("decode cart item %s: %w", doc.ID, err)
		}
		it.ID = doc.ID
		items = append(items, it)
	}
	return items, nil
}
