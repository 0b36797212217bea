package main

import (
	"errors"
	"net/http"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"github.com/Juliban27/DiningThrough/internal/repo"
	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidID = errors.New("invalid ID format")

func objectIDParam(r *http.Request, name string) (primitive.ObjectID, error) {
	idStr := chi.URLParam(r, name)
	if idStr == "" {
		return primitive.NilObjectID, ErrInvalidID
	}

	return parseObjectID(idStr)
}

func parseObjectID(idStr string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}

	return id, nil
}

type CreateProductRequest struct {
	Name         string   `json:"name" validate:"required,max=200"`
	Description  string   `json:"description" validate:"max=2000"`
	Price        float64  `json:"price" validate:"required,gt=0"`
	Stock        int      `json:"stock" validate:"gte=0"`
	Alergies     []string `json:"alergies"`
	Image        string   `json:"image"`
	Category     string   `json:"category"`
	RestaurantID string   `json:"restaurant_id" validate:"required"`
}

type UpdateStockRequest struct {
	Stock int `json:"stock" validate:"gte=0"`
}

// listProductsHandler godoc
//
//	@Summary		List products
//	@Description	List all products, optionally filtered by restaurant
//	@Tags			products
//	@Produce		json
//	@Param			restaurant_id	query		string	false	"Restaurant ID"
//	@Success		200				{array}		domain.Product
//	@Failure		500				{object}	map[string]string
//	@Router			/products [get]
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := app.productRepo.List(r.Context(), r.URL.Query().Get("restaurant_id"))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, products); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getProductHandler godoc
//
//	@Summary		Get product
//	@Description	Get a product by ID
//	@Tags			products
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"
//	@Success		200	{object}	domain.Product
//	@Failure		404	{object}	map[string]string
//	@Router			/products/{id} [get]
func (app *application) getProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product, err := app.productRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createProductHandler godoc
//
//	@Summary		Create product
//	@Description	Create a new product
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateProductRequest	true	"Product"
//	@Success		201		{object}	domain.Product
//	@Failure		400		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/products [post]
func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product := &domain.Product{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Stock:        req.Stock,
		Alergies:     req.Alergies,
		Image:        req.Image,
		Category:     req.Category,
		RestaurantID: req.RestaurantID,
	}

	if err := app.productRepo.Create(r.Context(), product); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateProductHandler godoc
//
//	@Summary		Update product
//	@Description	Replace a product's fields
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Product ID"
//	@Param			request	body		CreateProductRequest	true	"Product"
//	@Success		200		{object}	domain.Product
//	@Failure		404		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/products/{id} [put]
func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req CreateProductRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	existing, err := app.productRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Price = req.Price
	existing.Stock = req.Stock
	existing.Alergies = req.Alergies
	existing.Image = req.Image
	existing.Category = req.Category
	existing.RestaurantID = req.RestaurantID

	if err := app.productRepo.Update(r.Context(), existing); err != nil {
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

// patchProductStockHandler godoc
//
//	@Summary		Update product stock
//	@Description	Stock-only update of a product
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Product ID"
//	@Param			request	body		UpdateStockRequest	true	"Stock"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		404		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/products/{id} [patch]
func (app *application) patchProductStockHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req UpdateStockRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.productRepo.UpdateStock(r.Context(), id, req.Stock); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]interface{}{
		"id":    id.Hex(),
		"stock": req.Stock,
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteProductHandler godoc
//
//	@Summary		Delete product
//	@Tags			products
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"
//	@Success		200	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/products/{id} [delete]
func (app *application) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.productRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"message": "product deleted"}); err != nil {
		app.internalServerError(w, r, err)
	}
}
