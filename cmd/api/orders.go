package main

import (
	"errors"
	"net/http"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"github.com/Juliban27/DiningThrough/internal/repo"
)

type CreateOrderRequest struct {
	ClientID   string             `json:"client_id" validate:"required"`
	PuntoVenta string             `json:"punto_venta" validate:"required"`
	Products   []domain.OrderItem `json:"products" validate:"required,min=1,dive"`
}

// UpdateOrderRequest covers both uses of PUT /orders/{id}: a body carrying
// only state is a lifecycle transition, anything else is a full update.
type UpdateOrderRequest struct {
	State      domain.OrderState  `json:"state,omitempty"`
	ClientID   string             `json:"client_id,omitempty"`
	PuntoVenta string             `json:"punto_venta,omitempty"`
	Products   []domain.OrderItem `json:"products,omitempty"`
}

func (req *UpdateOrderRequest) isTransitionOnly() bool {
	return req.State != "" && req.ClientID == "" && req.PuntoVenta == "" && req.Products == nil
}

// listOrdersHandler godoc
//
//	@Summary		List orders
//	@Description	Clients see their own orders; admins see all, filterable by restaurant. scope=active|history filters by lifecycle stage.
//	@Tags			orders
//	@Produce		json
//	@Param			scope		query		string	false	"active or history"
//	@Param			punto_venta	query		string	false	"Restaurant ID (admin only)"
//	@Success		200			{array}		domain.Order
//	@Failure		401			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/orders [get]
func (app *application) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaimsFromContext(r)
	if err != nil {
		app.unauthorizedResponse(w, r, err)
		return
	}

	filter := repo.OrderFilter{}
	if claims.Role == domain.RoleAdmin {
		filter.PuntoVenta = r.URL.Query().Get("punto_venta")
	} else {
		filter.ClientID = claims.UserID
	}

	switch r.URL.Query().Get("scope") {
	case "active":
		filter.States = domain.ActiveStates()
	case "history":
		filter.States = domain.HistoryStates()
	}

	orders, err := app.orderRepo.List(r.Context(), filter)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, orders); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getOrderHandler godoc
//
//	@Summary	Get order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	domain.Order
//	@Failure	404	{object}	map[string]string
//	@Security	ApiKeyAuth
//	@Router		/orders/{id} [get]
func (app *application) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaimsFromContext(r)
	if err != nil {
		app.unauthorizedResponse(w, r, err)
		return
	}

	id, err := objectIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.orderRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	// clients can only see their own orders
	if claims.Role != domain.RoleAdmin && order.ClientID != claims.UserID {
		app.forbiddenResponse(w, r)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createOrderHandler godoc
//
//	@Summary		Create order
//	@Description	Manual order creation; the normal flow goes through checkout
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrderRequest	true	"Order"
//	@Success		201		{object}	domain.Order
//	@Failure		400		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/orders [post]
func (app *application) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order := &domain.Order{
		ClientID:   req.ClientID,
		PuntoVenta: req.PuntoVenta,
		Products:   req.Products,
		State:      domain.StatePending,
	}

	if err := app.orderRepo.Create(r.Context(), order); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateOrderHandler godoc
//
//	@Summary		Update order
//	@Description	Body with only {state} applies a lifecycle transition; any other body is a full update, rejected for terminal orders
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Order ID"
//	@Param			request	body		UpdateOrderRequest	true	"Order update"
//	@Success		200		{object}	domain.Order
//	@Failure		404		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/orders/{id} [put]
func (app *application) updateOrderHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaimsFromContext(r)
	if err != nil {
		app.unauthorizedResponse(w, r, err)
		return
	}

	id, err := objectIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req UpdateOrderRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if req.isTransitionOnly() {
		if !req.State.IsValid() {
			app.badRequestResponse(w, r, errors.New("unknown order state"))
			return
		}

		event, err := domain.EventForState(req.State)
		if err != nil {
			app.conflictResponse(w, r, err)
			return
		}

		order, err := app.orderService.ApplyTransition(r.Context(), id, event, claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidTransition):
				app.conflictResponse(w, r, err)
			case errors.Is(err, repo.ErrNotFound):
				app.notFoundResponse(w, r, err)
			default:
				app.internalServerError(w, r, err)
			}
			return
		}

		if err := app.jsonResponse(w, http.StatusOK, order); err != nil {
			app.internalServerError(w, r, err)
		}
		return
	}

	order, err := app.orderRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if order.State.IsTerminal() {
		app.conflictResponse(w, r, errors.New("order is in a terminal state"))
		return
	}

	if req.State != "" && req.State != order.State {
		app.badRequestResponse(w, r, errors.New("state changes must be sent as a state-only update"))
		return
	}

	if req.ClientID != "" {
		order.ClientID = req.ClientID
	}
	if req.PuntoVenta != "" {
		order.PuntoVenta = req.PuntoVenta
	}
	if req.Products != nil {
		order.Products = req.Products
	}

	if err := app.orderRepo.Update(r.Context(), order); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteOrderHandler godoc
//
//	@Summary	Delete order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Security	ApiKeyAuth
//	@Router		/orders/{id} [delete]
func (app *application) deleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.orderRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"message": "order deleted"}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getOrderAuditHandler godoc
//
//	@Summary	Get order status history
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{array}		domain.OrderStatusAudit
//	@Failure	404	{object}	map[string]string
//	@Security	ApiKeyAuth
//	@Router		/orders/{id}/audit [get]
func (app *application) getOrderAuditHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	audits, err := app.orderService.GetOrderAudit(r.Context(), id.Hex(), 50)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, audits); err != nil {
		app.internalServerError(w, r, err)
	}
}
