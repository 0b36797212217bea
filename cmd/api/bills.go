package main

import (
	"errors"
	"net/http"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"github.com/Juliban27/DiningThrough/internal/repo"
)

type CreateBillRequest struct {
	ClientID string             `json:"client_id" validate:"required"`
	Products []domain.OrderItem `json:"products" validate:"required,min=1,dive"`
	Total    float64            `json:"total" validate:"required,gt=0"`
}

// listBillsHandler godoc
//
//	@Summary		List bills
//	@Description	Clients see their own bills; admins see all
//	@Tags			bills
//	@Produce		json
//	@Success		200	{array}		domain.Bill
//	@Failure		401	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/bills [get]
func (app *application) listBillsHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaimsFromContext(r)
	if err != nil {
		app.unauthorizedResponse(w, r, err)
		return
	}

	clientID := claims.UserID
	if claims.Role == domain.RoleAdmin {
		clientID = r.URL.Query().Get("client_id")
	}

	bills, err := app.billRepo.List(r.Context(), clientID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, bills); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getBillHandler godoc
//
//	@Summary	Get bill
//	@Tags		bills
//	@Produce	json
//	@Param		id	path		string	true	"Bill ID"
//	@Success	200	{object}	domain.Bill
//	@Failure	404	{object}	map[string]string
//	@Security	ApiKeyAuth
//	@Router		/bills/{id} [get]
func (app *application) getBillHandler(w http.ResponseWriter, r *http.Request) {
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

	bill, err := app.billRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if claims.Role != domain.RoleAdmin && bill.ClientID != claims.UserID {
		app.forbiddenResponse(w, r)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, bill); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createBillHandler godoc
//
//	@Summary		Create bill
//	@Description	Manual bill creation; the normal flow goes through checkout
//	@Tags			bills
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateBillRequest	true	"Bill"
//	@Success		201		{object}	domain.Bill
//	@Failure		400		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/bills [post]
func (app *application) createBillHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateBillRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	bill := &domain.Bill{
		ClientID: req.ClientID,
		Products: req.Products,
		Total:    req.Total,
	}

	if err := app.billRepo.Create(r.Context(), bill); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, bill); err != nil {
		app.internalServerError(w, r, err)
	}
}
