package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/geocoder89/mocktail/internal/domain/product"
)

type ProductsRepo struct {
	mu    sync.RWMutex
	items map[string]product.Product
}

func NewProductsRepo(seed ...product.Product) *ProductsRepo {
	r := &ProductsRepo{items: make(map[string]product.Product)}
	for _, p := range seed {
		r.items[p.ID] = p
	}
	return r
}

func (r *ProductsRepo) List(_ context.Context) ([]product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]product.Product, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b product.Product) int {
		if a.SortOrder != b.SortOrder {
			return a.SortOrder - b.SortOrder
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return out, nil
}

func (r *ProductsRepo) GetByID(_ context.Context, id string) (product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return product.Product{}, product.ErrNotFound
	}
	return p, nil
}

func (r *ProductsRepo) GetBySlug(_ context.Context, slug string) (product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.items {
		if p.Slug == slug {
			return p, nil
		}
	}
	return product.Product{}, product.ErrNotFound
}

func (r *ProductsRepo) Create(_ context.Context, p product.Product) (product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slugTaken(p.Slug, p.ID) {
		return product.Product{}, product.ErrSlugTaken
	}

	r.items[p.ID] = p
	return p, nil
}

func (r *ProductsRepo) Update(_ context.Context, p product.Product) (product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[p.ID]
	if !ok {
		return product.Product{}, product.ErrNotFound
	}
	if r.slugTaken(p.Slug, p.ID) {
		return product.Product{}, product.ErrSlugTaken
	}

	p.CreatedAt = cur.CreatedAt
	r.items[p.ID] = p
	return p, nil
}

func (r *ProductsRepo) Delete(_ context.Context, id string) (product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return product.Product{}, product.ErrNotFound
	}
	delete(r.items, id)
	return p, nil
}

func (r *ProductsRepo) slugTaken(slug, exceptID string) bool {
	for id, p := range r.items {
		if id != exceptID && p.Slug == slug {
			return true
		}
	}
	return false
}
