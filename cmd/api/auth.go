package main

import (
	"errors"
	"net/http"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"github.com/Juliban27/DiningThrough/internal/repo"
	"github.com/Juliban27/DiningThrough/internal/service"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
	Role     string `json:"role" validate:"omitempty,oneof=admin cliente"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// registerHandler godoc
//
//	@Summary		Register user
//	@Description	Creates a user account; role defaults to cliente
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"Registration"
//	@Success		201		{object}	domain.User
//	@Failure		400		{object}	map[string]string
//	@Router			/register [post]
func (app *application) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, err := app.authService.Register(r.Context(), req.Email, req.Password, req.Name, domain.Role(req.Role))
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			app.conflictResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

// loginHandler godoc
//
//	@Summary		Login
//	@Description	Returns a bearer token encoding the user id and role
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	LoginResponse
//	@Failure		401		{object}	map[string]string
//	@Router			/login [post]
func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	token, user, err := app.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			app.unauthorizedResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, &LoginResponse{Token: token, User: user}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// adminSummaryHandler godoc
//
//	@Summary		Admin summary
//	@Description	Role-gated overview of active orders per state
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	map[string]int
//	@Failure		403	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/admin [get]
func (app *application) adminSummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary := make(map[string]int)

	for _, state := range []domain.OrderState{domain.StatePending, domain.StateAccepted, domain.StateReady} {
		orders, err := app.orderRepo.List(r.Context(), repo.OrderFilter{States: []domain.OrderState{state}})
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		summary[string(state)] = len(orders)
	}

	if err := app.jsonResponse(w, http.StatusOK, summary); err != nil {
		app.internalServerError(w, r, err)
	}
}
