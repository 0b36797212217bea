package repo

import (
	"context"

	"github.com/Juliban27/DiningThrough/internal/domain"
)

// CartStore holds the session-scoped cart for each client. Carts are whole
// documents serialized at save points; a missing cart reads back as a fresh
// empty one.
type CartStore interface {
	Get(ctx context.Context, clientID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, clientID string) error
}
