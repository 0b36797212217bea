package main

import (
	"errors"
	"net/http"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"github.com/Juliban27/DiningThrough/internal/repo"
)

type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type SetRestaurantRequest struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
	// Confirm acknowledges that switching restaurants clears a non-empty cart.
	Confirm bool `json:"confirm"`
}

type CheckoutRequest struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
}

func (app *application) cartErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrOutOfStock),
		errors.Is(err, domain.ErrStockExceeded),
		errors.Is(err, domain.ErrRestaurantMismatch):
		app.conflictResponse(w, r, err)
	case errors.Is(err, domain.ErrItemNotInCart), errors.Is(err, repo.ErrNotFound):
		app.notFoundResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}

// getCartHandler godoc
//
//	@Summary	Get cart
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	domain.Cart
//	@Failure	401	{object}	map[string]string
//	@Security	ApiKeyAuth
//	@Router		/cart [get]
func (app *application) getCartHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaimsFromContext(r)
	if err != nil {
		app.unauthorizedResponse(w, r, err)
		return
	}

	cart, err := app.cartService.GetCart(r.Context(), claims.UserID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, cart); err != nil {
		app.internalServerError(w, r, err)
	}
}

// addCartItemHandler godoc
//
//	@Summary		Add product to cart
//	@Description	Adds one unit; adding an item from another restaurant to a non-empty cart fails
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AddCartItemRequest	true	"Product"
//	@Success		200		{object}	domain.Cart
//	@Failure		409		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/cart/items [post]
func (app *application) addCartItemHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaimsFromContext(r)
	if err != nil {
		app.unauthorizedResponse(w, r, err)
		return
	}

	var req AddCartItemRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	productID, err := parseObjectID(req.ProductID)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	cart, err := app.cartService.AddItem(r.Context(), claims.UserID, productID)
	if err != nil {
		app.cartErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, cart); err != nil {
		app.internalServerError(w, r, err)
	}
}

// incrementCartItemHandler godoc
//
//	@Summary	Increment cart item quantity
//	@Tags		cart
//	@Produce	json
//	@Param		product_id	path		string	true	"Product ID"
//	@Success	200			{object}	domain.Cart
//	@Failure	409			{object}	map[string]string
//	@Security	ApiKeyAuth
//	@Router		/cart/items/{product_id}/increment [post]
func (app *application) incrementCartItemHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaimsFromContext(r)
	if err != nil {
		app.unauthorizedResponse(w, r, err)
		return
	}

	productID, err := objectIDParam(r, "product_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	cart, err := app.cartService.Increment(r.Context(), claims.UserID, productID)
	if err != nil {
		app.cartErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, cart); err != nil {
		app.internalServerError(w, r, err)
	}
}

// decrementCartItemHandler godoc
//
//	@Summary		Decrement cart item quantity
//	@Description	Going below one unit removes the item
//	@Tags			cart
//	@Produce		json
//	@Param			product_id	path		string	true	"Product ID"
//	@Success		200			{object}	domain.Cart
//	@Failure		404			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/cart/items/{product_id}/decrement [post]
func (app *application) decrementCartItemHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaimsFromContext(r)
	if err != nil {
		app.unauthorizedResponse(w, r, err)
		return
	}

	productID, err := objectIDParam(r, "product_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	cart, err := app.cartService.Decrement(r.Context(), claims.UserID, productID)
	if err != nil {
		app.cartErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, cart); err != nil {
		app.internalServerError(w, r, err)
	}
}

// removeCartItemHandler godoc
//
//	@Summary	Remove item from cart
//	@Tags		cart
//	@Produce	json
//	@Param		product_id	path		string	true	"Product ID"
//	@Success	200			{object}	domain.Cart
//	@Failure	404			{object}	map[string]string
//	@Security	ApiKeyAuth
//	@Router		/cart/items/{product_id} [delete]
func (app *application) removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaimsFromContext(r)
	if err != nil {
		app.unauthorizedResponse(w, r, err)
		return
	}

	productID, err := objectIDParam(r, "product_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	cart, err := app.cartService.RemoveItem(r.Context(), claims.UserID, productID)
	if err != nil {
		app.cartErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, cart); err != nil {
		app.internalServerError(w, r, err)
	}
}

// setCartRestaurantHandler godoc
//
//	@Summary		Bind cart to a restaurant
//	@Description	Rebinding a non-empty cart requires confirm=true and clears it
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SetRestaurantRequest	true	"Restaurant binding"
//	@Success		200		{object}	domain.Cart
//	@Failure		409		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/cart/restaurant [put]
func (app *application) setCartRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaimsFromContext(r)
	if err != nil {
		app.unauthorizedResponse(w, r, err)
		return
	}

	var req SetRestaurantRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	cart, err := app.cartService.SetRestaurant(r.Context(), claims.UserID, req.RestaurantID, req.Confirm)
	if err != nil {
		app.cartErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, cart); err != nil {
		app.internalServerError(w, r, err)
	}
}

// clearCartHandler godoc
//
//	@Summary	Clear cart
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Security	ApiKeyAuth
//	@Router		/cart [delete]
func (app *application) clearCartHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaimsFromContext(r)
	if err != nil {
		app.unauthorizedResponse(w, r, err)
		return
	}

	if err := app.cartService.Clear(r.Context(), claims.UserID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"message": "cart cleared"}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// checkoutHandler godoc
//
//	@Summary		Checkout
//	@Description	Converts the cart into a bill and a pending order and reserves stock atomically
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CheckoutRequest	true	"Checkout"
//	@Success		201		{object}	domain.Order
//	@Failure		409		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/checkout [post]
func (app *application) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaimsFromContext(r)
	if err != nil {
		app.unauthorizedResponse(w, r, err)
		return
	}

	var req CheckoutRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.checkoutService.Checkout(r.Context(), claims.UserID, req.RestaurantID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyCart),
			errors.Is(err, domain.ErrRestaurantMismatch):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, repo.ErrInsufficientStock):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, order); err != nil {
		app.internalServerError(w, r, err)
	}
}
