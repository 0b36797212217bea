package repo

import "context"

// Transactor runs fn inside a single storage transaction. Checkout uses it so
// the bill, the order and the stock decrements commit or abort together.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
