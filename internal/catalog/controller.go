// Package catalog routes product operations to the remote API or, when the API
// is unavailable, to the local store.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"product-catalog/internal/model"
	"product-catalog/internal/remote"

	"github.com/rs/zerolog"
)

var (
	// ErrOperationFailed is returned when the API is unavailable and the local
	// fallback could not complete either.
	ErrOperationFailed = errors.New("the operation could not be completed, please try again")

	// ErrNotLocalMode is returned by ResetLocalData outside local mode.
	ErrNotLocalMode = errors.New("local data can only be reset in local mode")
)

// Remote is the subset of the API client used by the Controller.
type Remote interface {
	List(ctx context.Context) ([]remote.Product, error)
	Create(ctx context.Context, draft model.CreateProductRequest) (*remote.Product, error)
	Delete(ctx context.Context, id int64) (*model.DeletedProduct, error)
}

// LocalStore is the subset of the local store used by the Controller.
type LocalStore interface {
	Load(ctx context.Context) []model.Product
	Save(ctx context.Context, products []model.Product)
	NextID(ctx context.Context) int64
	Reset(ctx context.Context)
}

// Controller owns the connection mode. Operations are not serialized; the
// mutex only guards the mode and the listener list.
type Controller struct {
	remote Remote
	local  *localCatalog
	logger zerolog.Logger

	mu        sync.Mutex
	mode      Mode
	listeners []subscription
	nextSubID uint64
}

// NewController creates a Controller in ModeChecking. Call Start to probe the API.
func NewController(r Remote, store LocalStore, logger zerolog.Logger) *Controller {
	return &Controller{
		remote: r,
		local:  &localCatalog{store: store, now: time.Now},
		logger: logger.With().Str("component", "catalog").Logger(),
		mode:   ModeChecking,
	}
}

// Start probes the API once and settles on ModeAPI or ModeLocal.
func (c *Controller) Start(ctx context.Context) Mode {
	if c.probe(ctx) {
		c.setMode(ModeAPI, false)
	} else {
		c.setMode(ModeLocal, false)
	}
	return c.Mode()
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Subscribe registers l for mode changes and returns a function that removes
// this registration. The returned function may be called any number of times.
func (c *Controller) Subscribe(l Listener) (unsubscribe func()) {
	c.mu.Lock()
	c.nextSubID++
	id := c.nextSubID
	c.listeners = append(c.listeners, subscription{id: id, listener: l})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.listeners {
			if s.id == id {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

// List returns every product, newest first.
func (c *Controller) List(ctx context.Context) ([]model.Product, error) {
	if c.Mode() != ModeLocal {
		products, err := c.listRemote(ctx)
		if err == nil {
			c.setMode(ModeAPI, true)
			return products, nil
		}
		if !c.fallBack(err, "list") {
			return nil, err
		}
	}

	products, err := c.local.list(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	return products, nil
}

// Create stores a new product. Validation errors are *model.DomainError in
// either mode.
func (c *Controller) Create(ctx context.Context, draft model.CreateProductRequest) (*model.Product, error) {
	if c.Mode() != ModeLocal {
		created, err := c.remote.Create(ctx, draft)
		if err == nil {
			product, err := normalize(*created)
			if err == nil {
				// Only List re-announces an unchanged mode.
				c.setMode(ModeAPI, false)
				return &product, nil
			}
			// The product exists remotely but cannot be represented; falling
			// back would create a second copy locally.
			return nil, err
		}
		if !c.fallBack(err, "create") {
			return nil, businessError(err)
		}
	}

	product, err := c.local.create(ctx, draft)
	return product, surface(err)
}

// Delete removes a product and returns its id and name. A missing product is
// reported with model.ErrProductNotFound's code in either mode.
func (c *Controller) Delete(ctx context.Context, id int64) (*model.DeletedProduct, error) {
	if c.Mode() != ModeLocal {
		deleted, err := c.remote.Delete(ctx, id)
		if err == nil {
			// Only List re-announces an unchanged mode.
			c.setMode(ModeAPI, false)
			return deleted, nil
		}
		if !c.fallBack(err, "delete") {
			return nil, businessError(err)
		}
	}

	deleted, err := c.local.delete(ctx, id)
	return deleted, surface(err)
}

// SwitchToAPIMode probes the API. On success the Controller enters ModeAPI
// and returns true; otherwise it stays in (or enters) ModeLocal.
func (c *Controller) SwitchToAPIMode(ctx context.Context) bool {
	if c.probe(ctx) {
		c.setMode(ModeAPI, false)
		return true
	}
	c.setMode(ModeLocal, false)
	return false
}

// SwitchToLocalMode enters ModeLocal without contacting the API.
func (c *Controller) SwitchToLocalMode() {
	c.setMode(ModeLocal, false)
}

// CheckConnection reports whether the API answers, without changing mode.
func (c *Controller) CheckConnection(ctx context.Context) bool {
	return c.probe(ctx)
}

// ResetLocalData restores the local collection to the seed set.
func (c *Controller) ResetLocalData(ctx context.Context) error {
	if c.Mode() != ModeLocal {
		return ErrNotLocalMode
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	c.local.store.Reset(ctx)
	c.logger.Info().Msg("local data reset to seed")
	return nil
}

func (c *Controller) listRemote(ctx context.Context) ([]model.Product, error) {
	items, err := c.remote.List(ctx)
	if err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(items))
	for _, item := range items {
		p, err := normalize(item)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (c *Controller) probe(ctx context.Context) bool {
	if _, err := c.remote.List(ctx); err != nil {
		c.logger.Debug().Err(err).Msg("API probe failed")
		return false
	}
	return true
}

// fallBack switches to ModeLocal when err means the API is unavailable and
// reports whether the caller should continue against the local store.
func (c *Controller) fallBack(err error, op string) bool {
	if !remote.IsUnavailable(err) {
		return false
	}
	c.logger.Warn().Err(err).Str("op", op).Msg("API unavailable, switching to local mode")
	c.setMode(ModeLocal, false)
	return true
}

// setMode records m and notifies listeners when it changed, or always when
// announce is set. Listeners run outside the lock, in registration order.
func (c *Controller) setMode(m Mode, announce bool) {
	c.mu.Lock()
	changed := c.mode != m
	c.mode = m
	if !changed && !announce {
		c.mu.Unlock()
		return
	}
	listeners := make([]Listener, len(c.listeners))
	for i, s := range c.listeners {
		listeners[i] = s.listener
	}
	c.mu.Unlock()

	if changed {
		c.logger.Info().Str("mode", string(m)).Msg("connection mode changed")
	}
	for _, l := range listeners {
		l(m)
	}
}

// surface passes business errors through and hides everything else behind
// ErrOperationFailed.
func surface(err error) error {
	if err == nil || model.IsValidationError(err) || model.IsNotFoundError(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrOperationFailed, err)
}

// businessError turns an API rejection into the domain error the local store
// would have produced, keeping the server's message and required fields.
// Other errors are returned unchanged.
func businessError(err error) error {
	var re *remote.Error
	if !errors.As(err, &re) {
		return err
	}

	switch re.Kind {
	case remote.KindNotFound:
		return model.NewDomainError(model.ErrCodeProductNotFound, re.Message)
	case remote.KindValidation:
		de := &model.DomainError{Code: re.Code, Message: re.Message, RequiredFields: re.RequiredFields}
		if !model.IsValidationError(de) {
			de.Code = model.ErrCodeValidation
		}
		return de
	}
	return err
}

// normalize converts an API product into the domain type, parsing prices that
// arrive as numeric strings.
func normalize(p remote.Product) (model.Product, error) {
	price, err := p.Price.Float64()
	if err != nil {
		return model.Product{}, &remote.Error{
			Kind:    remote.KindProtocol,
			Op:      "normalize price",
			Message: fmt.Sprintf("product %d has non-numeric price %q", p.ID, p.Price.String()),
			Err:     err,
		}
	}

	return model.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}
