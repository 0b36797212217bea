package main

import (
	"net/http"
)

// listUsersHandler godoc
//
//	@Summary	List users
//	@Tags		users
//	@Produce	json
//	@Success	200	{array}		domain.User
//	@Failure	403	{object}	map[string]string
//	@Security	ApiKeyAuth
//	@Router		/users [get]
func (app *application) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := app.userRepo.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, users); err != nil {
		app.internalServerError(w, r, err)
	}
}
