package main

import (
	"errors"
	"net/http"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"github.com/Juliban27/DiningThrough/internal/repo"
)

type CreateRestaurantRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Location  string  `json:"location" validate:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	OpensAt   string  `json:"opens_at" validate:"omitempty,len=5"`
	ClosesAt  string  `json:"closes_at" validate:"omitempty,len=5"`
	Image     string  `json:"image"`
}

// listRestaurantsHandler godoc
//
//	@Summary	List restaurants
//	@Tags		restaurants
//	@Produce	json
//	@Success	200	{array}		domain.Restaurant
//	@Failure	500	{object}	map[string]string
//	@Router		/restaurants [get]
func (app *application) listRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	restaurants, err := app.restaurantRepo.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, restaurants); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getRestaurantHandler godoc
//
//	@Summary	Get restaurant
//	@Tags		restaurants
//	@Produce	json
//	@Param		id	path		string	true	"Restaurant ID"
//	@Success	200	{object}	domain.Restaurant
//	@Failure	404	{object}	map[string]string
//	@Router		/restaurants/{id} [get]
func (app *application) getRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	restaurant, err := app.restaurantRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createRestaurantHandler godoc
//
//	@Summary	Create restaurant
//	@Tags		restaurants
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateRestaurantRequest	true	"Restaurant"
//	@Success	201		{object}	domain.Restaurant
//	@Failure	400		{object}	map[string]string
//	@Security	ApiKeyAuth
//	@Router		/restaurants [post]
func (app *application) createRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateRestaurantRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	restaurant := &domain.Restaurant{
		Name:      req.Name,
		Location:  req.Location,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		OpensAt:   req.OpensAt,
		ClosesAt:  req.ClosesAt,
		Image:     req.Image,
	}

	if err := app.restaurantRepo.Create(r.Context(), restaurant); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateRestaurantHandler godoc
//
//	@Summary	Update restaurant
//	@Tags		restaurants
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Restaurant ID"
//	@Param		request	body		CreateRestaurantRequest	true	"Restaurant"
//	@Success	200		{object}	domain.Restaurant
//	@Failure	404		{object}	map[string]string
//	@Security	ApiKeyAuth
//	@Router		/restaurants/{id} [put]
func (app *application) updateRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req CreateRestaurantRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	existing, err := app.restaurantRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	existing.Name = req.Name
	existing.Location = req.Location
	existing.Latitude = req.Latitude
	existing.Longitude = req.Longitude
	existing.OpensAt = req.OpensAt
	existing.ClosesAt = req.ClosesAt
	existing.Image = req.Image

	if err := app.restaurantRepo.Update(r.Context(), existing); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, existing); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteRestaurantHandler godoc
//
//	@Summary	Delete restaurant
//	@Tags		restaurants
//	@Produce	json
//	@Param		id	path		string	true	"Restaurant ID"
//	@Success	200	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Security	ApiKeyAuth
//	@Router		/restaurants/{id} [delete]
func (app *application) deleteRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.restaurantRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"message": "restaurant deleted"}); err != nil {
		app.internalServerError(w, r, err)
	}
}
