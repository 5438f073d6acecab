// Package cache provides Redis read-through decorators for catalog lookups.
package cache

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xenking/pos-admin/internal/domain/order"
	"github.com/xenking/pos-admin/internal/domain/product"
	"github.com/xenking/pos-admin/internal/wire"
)

const (
	productKeyPrefix = "pos:product:"
	DefaultTTL       = 5 * time.Minute
)

var _ product.Repository = (*Products)(nil)

// Products caches single-product lookups in Redis. Listings bypass the
// cache. Redis failures degrade to the underlying repository.
type Products struct {
	next   product.Repository
	client redis.UniversalClient
	ttl    time.Duration
}

// NewProducts wraps next with a read-through cache. A zero ttl selects
// DefaultTTL.
func NewProducts(next product.Repository, client redis.UniversalClient, ttl time.Duration) *Products {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Products{next: next, client: client, ttl: ttl}
}

func productKey(id string) string { return productKeyPrefix + id }

func (c *Products) List(ctx context.Context, f product.Filter) ([]product.Product, error) {
	return c.next.List(ctx, f)
}

func (c *Products) GetByID(ctx context.Context, id string) (*product.Product, error) {
	cached, err := c.load(ctx, []string{id})
	if err == nil && len(cached) == 1 {
		return &cached[0], nil
	}

	p, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, []product.Product{*p})
	return p, nil
}

// GetByIDs serves cached products and fetches the rest in one call to the
// underlying repository.
func (c *Products) GetByIDs(ctx context.Context, ids []string) ([]product.Product, error) {
	cached, err := c.load(ctx, ids)
	if err != nil {
		zctx.From(ctx).Warn("Product cache read failed", zap.Error(err))
		cached = nil
	}

	hit := make(map[string]struct{}, len(cached))
	for _, p := range cached {
		hit[p.ID] = struct{}{}
	}
	var missing []string
	for _, id := range ids {
		if _, ok := hit[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return cached, nil
	}

	fetched, err := c.next.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	c.store(ctx, fetched)
	return append(cached, fetched...), nil
}

func (c *Products) Create(ctx context.Context, p *product.Product) error {
	return c.next.Create(ctx, p)
}

func (c *Products) Update(ctx context.Context, p *product.Product) error {
	if err := c.next.Update(ctx, p); err != nil {
		return err
	}
	c.Invalidate(ctx, p.ID)
	return nil
}

func (c *Products) Delete(ctx context.Context, id string) error {
	if err := c.next.Delete(ctx, id); err != nil {
		return err
	}
	c.Invalidate(ctx, id)
	return nil
}

// Invalidate drops the cached entries for ids.
func (c *Products) Invalidate(ctx context.Context, ids ...string) {
	if len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		zctx.From(ctx).Warn("Product cache invalidation failed",
			zap.Strings("product_ids", ids),
			zap.Error(err),
		)
	}
}

// load returns the cached products among ids. Misses are omitted.
func (c *Products) load(ctx context.Context, ids []string) ([]product.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}
	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "mget products")
	}

	out := make([]product.Product, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var p product.Product
		if err := wire.DecodeProduct(jx.DecodeStr(raw), &p); err != nil {
			// Drop entries written by an incompatible encoder.
			c.Invalidate(ctx, ids[i])
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (c *Products) store(ctx context.Context, ps []product.Product) {
	if len(ps) == 0 {
		return
	}
	pipe := c.client.Pipeline()
	for i := range ps {
		var e jx.Encoder
		wire.EncodeProduct(&e, &ps[i])
		pipe.Set(ctx, productKey(ps[i].ID), e.Bytes(), c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		zctx.From(ctx).Warn("Product cache write failed", zap.Error(err))
	}
}

var _ order.Repository = (*Orders)(nil)

// Orders evicts the products of every attempted order from the product
// cache, including failed ones.
type Orders struct {
	order.Repository
	products *Products
}

// NewOrders wraps next so that Create invalidates products.
func NewOrders(next order.Repository, products *Products) *Orders {
	return &Orders{Repository: next, products: products}
}

func (o *Orders) Create(ctx context.Context, ord *order.Order) error {
	err := o.Repository.Create(ctx, ord)

	ids := make([]string, len(ord.Items))
	for i, it := range ord.Items {
		ids[i] = it.ProductID
	}
	o.products.Invalidate(ctx, ids...)
	return err
}
