package domain

import (
	"errors"
	"time"
)

var (
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrStockExceeded      = errors.New("quantity exceeds available stock")
	ErrItemNotInCart      = errors.New("item is not in the cart")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrRestaurantMismatch = errors.New("cart is bound to a different restaurant")
)

type CartItem struct {
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Image     string   `json:"image"`
	Alergies  []string `json:"alergies"`
	Quantity  int      `json:"quantity"`
}

// Cart is the working set of items one client is assembling. It is bound to a
// single restaurant and lives in the session store, not in MongoDB; every
// mutation below is pure and the caller persists the result at save points.
type Cart struct {
	ClientID     string     `json:"client_id"`
	RestaurantID string     `json:"restaurant_id"`
	Items        []CartItem `json:"items"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func NewCart(clientID string) *Cart {
	return &Cart{
		ClientID: clientID,
		Items:    []CartItem{},
	}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) find(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}

	return -1
}

// AddItem puts one unit of product into the cart, bumping the quantity when
// the product is already present. The quantity never exceeds the stock seen at
// the moment of the call.
func (c *Cart) AddItem(product *Product) error {
	if product.Stock <= 0 {
		return ErrOutOfStock
	}

	if !c.IsEmpty() && c.RestaurantID != product.RestaurantID {
		return ErrRestaurantMismatch
	}

	if i := c.find(product.ID.Hex()); i >= 0 {
		if c.Items[i].Quantity+1 > product.Stock {
			return ErrStockExceeded
		}
		c.Items[i].Quantity++
		c.UpdatedAt = time.Now()
		return nil
	}

	c.RestaurantID = product.RestaurantID
	c.Items = append(c.Items, CartItem{
		ProductID: product.ID.Hex(),
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Alergies:  product.Alergies,
		Quantity:  1,
	})
	c.UpdatedAt = time.Now()

	return nil
}

// Increment raises the quantity of an item by one, respecting the stock
// ceiling passed by the caller from a fresh product read.
func (c *Cart) Increment(productID string, stock int) error {
	i := c.find(productID)
	if i < 0 {
		return ErrItemNotInCart
	}

	if c.Items[i].Quantity+1 > stock {
		return ErrStockExceeded
	}

	c.Items[i].Quantity++
	c.UpdatedAt = time.Now()

	return nil
}

// Decrement lowers the quantity by one; going below 1 removes the item, so no
// zero-quantity entries ever persist.
func (c *Cart) Decrement(productID string) error {
	i := c.find(productID)
	if i < 0 {
		return ErrItemNotInCart
	}

	if c.Items[i].Quantity <= 1 {
		c.removeAt(i)
	} else {
		c.Items[i].Quantity--
	}
	c.UpdatedAt = time.Now()

	return nil
}

func (c *Cart) RemoveItem(productID string) error {
	i := c.find(productID)
	if i < 0 {
		return ErrItemNotInCart
	}

	c.removeAt(i)
	c.UpdatedAt = time.Now()

	return nil
}

func (c *Cart) removeAt(i int) {
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	if len(c.Items) == 0 {
		c.RestaurantID = ""
	}
}

// SetRestaurant rebinds the cart to another restaurant. A non-empty cart never
// switches silently: without confirm the call fails with ErrRestaurantMismatch
// and the cart is untouched; with confirm the cart is cleared first.
func (c *Cart) SetRestaurant(restaurantID string, confirm bool) error {
	if c.RestaurantID == restaurantID {
		return nil
	}

	if !c.IsEmpty() {
		if !confirm {
			return ErrRestaurantMismatch
		}
		c.Items = []CartItem{}
	}

	c.RestaurantID = restaurantID
	c.UpdatedAt = time.Now()

	return nil
}

func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.RestaurantID = ""
	c.UpdatedAt = time.Now()
}

// Total is the checkout total over the exact item set in the cart.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}

	return total
}

// OrderItems snapshots the cart lines into the shape persisted on orders and
// bills.
func (c *Cart) OrderItems() []OrderItem {
	items := make([]OrderItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return items
}
