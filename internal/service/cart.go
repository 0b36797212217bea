package service

import (
	"context"
	"fmt"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"github.com/Juliban27/DiningThrough/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CartService wraps the pure cart mutations with loading, stock lookups and
// save points against the session store. Stock checks are best effort: they
// use the stock visible at the moment of the call, and checkout re-validates
// atomically.
type CartService struct {
	cartStore   repo.CartStore
	productRepo repo.ProductRepository
	logger      *zap.SugaredLogger
}

func NewCartService(
	cartStore repo.CartStore,
	productRepo repo.ProductRepository,
	logger *zap.SugaredLogger,
) *CartService {
	return &CartService{
		cartStore:   cartStore,
		productRepo: productRepo,
		logger:      logger,
	}
}

func (s *CartService) GetCart(ctx context.Context, clientID string) (*domain.Cart, error) {
	return s.cartStore.Get(ctx, clientID)
}

func (s *CartService) AddItem(ctx context.Context, clientID string, productID primitive.ObjectID) (*domain.Cart, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartStore.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if err := cart.AddItem(product); err != nil {
		return nil, err
	}

	if err := s.cartStore.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return cart, nil
}

func (s *CartService) Increment(ctx context.Context, clientID string, productID primitive.ObjectID) (*domain.Cart, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartStore.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if err := cart.Increment(productID.Hex(), product.Stock); err != nil {
		return nil, err
	}

	if err := s.cartStore.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return cart, nil
}

func (s *CartService) Decrement(ctx context.Context, clientID string, productID primitive.ObjectID) (*domain.Cart, error) {
	cart, err := s.cartStore.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if err := cart.Decrement(productID.Hex()); err != nil {
		return nil, err
	}

	if err := s.cartStore.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, clientID string, productID primitive.ObjectID) (*domain.Cart, error) {
	cart, err := s.cartStore.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if err := cart.RemoveItem(productID.Hex()); err != nil {
		return nil, err
	}

	if err := s.cartStore.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return cart, nil
}

// SetRestaurant rebinds the cart. Without confirm, a non-empty cart bound
// elsewhere fails with ErrRestaurantMismatch so the caller can ask the client
// before anything is lost.
func (s *CartService) SetRestaurant(ctx context.Context, clientID, restaurantID string, confirm bool) (*domain.Cart, error) {
	cart, err := s.cartStore.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if err := cart.SetRestaurant(restaurantID, confirm); err != nil {
		return nil, err
	}

	if err := s.cartStore.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, clientID string) error {
	if err := s.cartStore.Delete(ctx, clientID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
