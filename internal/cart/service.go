package cart

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/flowohq/storefront-gateway/pkg/errors"
	"github.com/flowohq/storefront-gateway/pkg/logger"
)

// Service exposes the cart operations against a session token. The cart
// itself is pure state; the service loads it from the injected store, applies
// one mutation and saves it back. Nothing is persisted until the store
// confirms the write.
type Service interface {
	Get(ctx context.Context, token string) (*Cart, error)
	Add(ctx context.Context, token string, item Item) (*Cart, error)
	Increment(ctx context.Context, token, id string) (*Cart, error)
	Decrement(ctx context.Context, token, id string) (*Cart, error)
	Remove(ctx context.Context, token, id string) (*Cart, error)
	Clear(ctx context.Context, token string) error
	Quote(ctx context.Context, token, promoCode string) (*Quote, error)
}

type service struct {
	store Store
	logg  *logger.Logger
}

// NewService builds a cart service backed by the provided store.
func NewService(store Store, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	return &service{store: store, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, token string) (*Cart, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	return s.load(ctx, token)
}

func (s *service) Add(ctx context.Context, token string, item Item) (*Cart, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	if strings.TrimSpace(item.ID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if strings.TrimSpace(item.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if item.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item price cannot be negative")
	}

	return s.mutate(ctx, token, func(c *Cart) {
		c.Add(item)
	})
}

func (s *service) Increment(ctx context.Context, token, id string) (*Cart, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	return s.mutate(ctx, token, func(c *Cart) {
		c.Increment(id)
	})
}

func (s *service) Decrement(ctx context.Context, token, id string) (*Cart, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	return s.mutate(ctx, token, func(c *Cart) {
		c.Decrement(id)
	})
}

func (s *service) Remove(ctx context.Context, token, id string) (*Cart, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	return s.mutate(ctx, token, func(c *Cart) {
		c.Remove(id)
	})
}

func (s *service) Clear(ctx context.Context, token string) error {
	if err := validateToken(token); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}

func (s *service) Quote(ctx context.Context, token, promoCode string) (*Quote, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	cart, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	quote := BuildQuote(cart, promoCode)
	return &quote, nil
}

func (s *service) load(ctx context.Context, token string) (*Cart, error) {
	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	return cart, nil
}

func (s *service) mutate(ctx context.Context, token string, fn func(*Cart)) (*Cart, error) {
	cart, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	fn(cart)
	if err := s.store.Save(ctx, token, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save cart")
	}
	return cart, nil
}

func validateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	return nil
}
