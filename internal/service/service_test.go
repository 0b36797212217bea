package service

import (
	"context"
	"sync"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"github.com/Juliban27/DiningThrough/internal/queue"
	"github.com/Juliban27/DiningThrough/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var testLogger = zap.NewNop().Sugar()

// in-memory doubles for the repository interfaces

type fakeCartStore struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: map[string]*domain.Cart{}}
}

func (s *fakeCartStore) Get(_ context.Context, clientID string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cart, ok := s.carts[clientID]; ok {
		return cart, nil
	}
	return domain.NewCart(clientID), nil
}

func (s *fakeCartStore) Save(_ context.Context, cart *domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cart.ClientID] = cart
	return nil
}

func (s *fakeCartStore) Delete(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, clientID)
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*domain.Product
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[primitive.ObjectID]*domain.Product{}}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List(_ context.Context, restaurantID string) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Product
	for _, p := range r.products {
		if restaurantID == "" || p.RestaurantID == restaurantID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return repo.ErrNotFound
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, id primitive.ObjectID, stock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return repo.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id primitive.ObjectID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.Stock < quantity {
		return repo.ErrInsufficientStock
	}
	p.Stock -= quantity
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]*domain.Order

	createErr      error
	updateStateErr error
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[primitive.ObjectID]*domain.Order{}}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.State == "" {
		order.State = domain.StatePending
	}
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) List(_ context.Context, filter repo.OrderFilter) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, o := range r.orders {
		if filter.ClientID != "" && o.ClientID != filter.ClientID {
			continue
		}
		if filter.PuntoVenta != "" && o.PuntoVenta != filter.PuntoVenta {
			continue
		}
		if len(filter.States) > 0 {
			match := false
			for _, s := range filter.States {
				if o.State == s {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return repo.ErrNotFound
	}
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) UpdateState(_ context.Context, id primitive.ObjectID, from, to domain.OrderState) error {
	if r.updateStateErr != nil {
		return r.updateStateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.State != from {
		return repo.ErrNotFound
	}
	o.State = to
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

type fakeBillRepo struct {
	mu    sync.Mutex
	bills []*domain.Bill

	createErr error
}

func (r *fakeBillRepo) Create(_ context.Context, bill *domain.Bill) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if bill.ID.IsZero() {
		bill.ID = primitive.NewObjectID()
	}
	r.bills = append(r.bills, bill)
	return nil
}

func (r *fakeBillRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bills {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeBillRepo) List(_ context.Context, clientID string) ([]domain.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Bill
	for _, b := range r.bills {
		if clientID == "" || b.ClientID == clientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeRatingRepo struct {
	mu      sync.Mutex
	ratings []*domain.Rating
}

func (r *fakeRatingRepo) Create(_ context.Context, rating *domain.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rating.ID.IsZero() {
		rating.ID = primitive.NewObjectID()
	}
	r.ratings = append(r.ratings, rating)
	return nil
}

func (r *fakeRatingRepo) ListByProductID(_ context.Context, productID string) ([]domain.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Rating
	for _, rt := range r.ratings {
		if rt.ProductID == productID {
			out = append(out, *rt)
		}
	}
	return out, nil
}

func (r *fakeRatingRepo) Summary(_ context.Context, productID string) (*domain.RatingSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	summary := &domain.RatingSummary{ProductID: productID}
	var sum int
	for _, rt := range r.ratings {
		if rt.ProductID == productID {
			sum += rt.Score
			summary.Count++
		}
	}
	if summary.Count > 0 {
		summary.Average = float64(sum) / float64(summary.Count)
	}
	return summary, nil
}

type fakeAuditRepo struct {
	mu     sync.Mutex
	audits []*domain.OrderStatusAudit
}

func (r *fakeAuditRepo) Create(_ context.Context, audit *domain.OrderStatusAudit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.audits = append(r.audits, audit)
	return nil
}

func (r *fakeAuditRepo) GetByOrderID(_ context.Context, orderID string, limit int) ([]domain.OrderStatusAudit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.OrderStatusAudit
	for _, a := range r.audits {
		if a.OrderID == orderID {
			out = append(out, *a)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return repo.ErrDuplicateEmail
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

// passthroughTransactor runs fn directly; the fakes have no transaction
// semantics, so rollback behavior is asserted through observable state instead.
type passthroughTransactor struct{}

func (passthroughTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBroker struct {
	mu        sync.Mutex
	published map[string][][]byte
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{published: map[string][][]byte{}}
}

func (b *fakeBroker) Publish(_ context.Context, queueName string, message []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published[queueName] = append(b.published[queueName], message)
	return nil
}

func (b *fakeBroker) Subscribe(context.Context, string, queue.MessageHandler) error {
	return nil
}

func (b *fakeBroker) Close() error { return nil }
