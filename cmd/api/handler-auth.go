package main

import (
	"net/http"

	"github.com/vlourenco/treinoapp/internal/users"
)

// userCreatePOST registers a new account.
func (app *application) userCreatePOST(w http.ResponseWriter, r *http.Request) {
	var params users.CreateUserParams
	if !app.readJSON(w, r, &params) {
		return
	}

	user, err := app.userService.Create(r.Context(), params)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, user, "Usuário criado com sucesso")
}

// loginPOST verifies credentials and rotates the session.
func (app *application) loginPOST(w http.ResponseWriter, r *http.Request) {
	var params struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !app.readJSON(w, r, &params) {
		return
	}

	user, err := app.userService.Authenticate(r.Context(), params.Email, params.Password)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	// Renew the token to avoid session fixation.
	if err = app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.sessionManager.Put(r.Context(), sessionKeyUserID, user.ID.String())
	app.sessionManager.Put(r.Context(), sessionKeyIsTrainer, user.Type == users.TypeTrainer)

	app.writeJSON(w, r, http.StatusOK, user, "Login realizado com sucesso")
}

// logoutPOST destroys the session.
func (app *application) logoutPOST(w http.ResponseWriter, r *http.Request) {
	if err := app.sessionManager.Destroy(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, nil, "Logout realizado com sucesso")
}
