package catalog

import (
	"context"
	"sort"
	"time"

	"product-catalog/internal/model"
)

// localCatalog implements the product operations on top of the local store.
type localCatalog struct {
	store LocalStore
	now   func() time.Time
}

// list returns the stored products, newest first. Ties keep the higher ID first
// so repeated calls return the same order.
func (l *localCatalog) list(ctx context.Context) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	products := l.store.Load(ctx)
	sort.SliceStable(products, func(i, j int) bool {
		if !products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		}
		return products[i].ID > products[j].ID
	})
	return products, nil
}

func (l *localCatalog) create(ctx context.Context, draft model.CreateProductRequest) (*model.Product, error) {
	valid, err := model.ValidateDraft(draft)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	products := l.store.Load(ctx)
	now := l.now().UTC()
	product := model.Product{
		ID:          l.store.NextID(ctx),
		Name:        valid.Name,
		Description: valid.Description,
		Price:       valid.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	l.store.Save(ctx, append(products, product))
	return &product, nil
}

func (l *localCatalog) delete(ctx context.Context, id int64) (*model.DeletedProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	products := l.store.Load(ctx)
	kept := make([]model.Product, 0, len(products))
	var deleted *model.DeletedProduct
	for _, p := range products {
		if p.ID == id {
			if deleted == nil {
				deleted = &model.DeletedProduct{ID: p.ID, Name: p.Name}
			}
			continue
		}
		kept = append(kept, p)
	}

	if deleted == nil {
		return nil, model.NewProductNotFoundError(id)
	}

	l.store.Save(ctx, kept)
	return deleted, nil
}
