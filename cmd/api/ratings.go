package main

import (
	"errors"
	"net/http"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"github.com/Juliban27/DiningThrough/internal/repo"
	"github.com/go-chi/chi"
)

type SubmitRatingRequest struct {
	Score   int    `json:"score" validate:"required"`
	Comment string `json:"comment" validate:"max=1000"`
}

// listRatingsHandler godoc
//
//	@Summary	List product ratings
//	@Tags		ratings
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"
//	@Success	200	{array}		domain.Rating
//	@Failure	400	{object}	map[string]string
//	@Router		/products/{id}/ratings [get]
func (app *application) listRatingsHandler(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if productID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	ratings, err := app.ratingService.ListRatings(r.Context(), productID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, ratings); err != nil {
		app.internalServerError(w, r, err)
	}
}

// submitRatingHandler godoc
//
//	@Summary		Rate product
//	@Description	Score must be an integer between 1 and 5
//	@Tags			ratings
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Product ID"
//	@Param			request	body		SubmitRatingRequest	true	"Rating"
//	@Success		201		{object}	domain.Rating
//	@Failure		400		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/products/{id}/ratings [post]
func (app *application) submitRatingHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaimsFromContext(r)
	if err != nil {
		app.unauthorizedResponse(w, r, err)
		return
	}

	productID := chi.URLParam(r, "id")
	if productID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req SubmitRatingRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	rating, err := app.ratingService.SubmitRating(r.Context(), productID, claims.UserID, req.Score, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidScore):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, repo.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, rating); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getRatingAverageHandler godoc
//
//	@Summary		Get product rating average
//	@Description	Average and count recomputed from the stored ratings; (0,0) when none exist
//	@Tags			ratings
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"
//	@Success		200	{object}	domain.RatingSummary
//	@Failure		400	{object}	map[string]string
//	@Router			/products/{id}/ratings/average [get]
func (app *application) getRatingAverageHandler(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if productID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	summary, err := app.ratingService.GetAverage(r.Context(), productID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, summary); err != nil {
		app.internalServerError(w, r, err)
	}
}
