package main

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/vlourenco/treinoapp/internal/contexthelpers"
	"github.com/vlourenco/treinoapp/internal/workout"
)

func (app *application) sessionStartPOST(w http.ResponseWriter, r *http.Request) {
	userID, _ := contexthelpers.AuthenticatedUserID(r.Context())
	var params struct {
		WorkoutID *uuid.UUID `json:"workoutId"`
	}
	if !app.readJSON(w, r, &params) {
		return
	}
	session, err := app.workoutService.StartSession(r.Context(), userID, params.WorkoutID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, session, "Sessão iniciada com sucesso")
}

func (app *application) sessionAddSetPOST(w http.ResponseWriter, r *http.Request) {
	userID, _ := contexthelpers.AuthenticatedUserID(r.Context())
	sessionID, ok := app.parseUUIDParam(w, r, "sessionID")
	if !ok {
		return
	}
	var params workout.AddSetParams
	if !app.readJSON(w, r, &params) {
		return
	}
	log, err := app.workoutService.AddSetLog(r.Context(), userID, sessionID, params)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, log, "Série registrada com sucesso")
}

func (app *application) sessionFinishPOST(w http.ResponseWriter, r *http.Request) {
	userID, _ := contexthelpers.AuthenticatedUserID(r.Context())
	sessionID, ok := app.parseUUIDParam(w, r, "sessionID")
	if !ok {
		return
	}
	session, alreadyFinished, err := app.workoutService.FinishSession(r.Context(), userID, sessionID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	message := "Sessão finalizada com sucesso"
	if alreadyFinished {
		message = "Sessão já estava finalizada"
	}
	app.writeJSON(w, r, http.StatusOK, session, message)
}

func (app *application) sessionsGET(w http.ResponseWriter, r *http.Request) {
	userID, _ := contexthelpers.AuthenticatedUserID(r.Context())
	sessions, err := app.workoutService.SessionsByUser(r.Context(), userID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, sessions, "")
}

func (app *application) setLogsGET(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireSelf(w, r)
	if !ok {
		return
	}
	logs, err := app.workoutService.SetLogsByUser(r.Context(), userID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, logs, "")
}

func (app *application) latestSessionGET(w http.ResponseWriter, r *http.Request) {
	userID, _ := contexthelpers.AuthenticatedUserID(r.Context())
	workoutID, ok := app.parseUUIDParam(w, r, "workoutID")
	if !ok {
		return
	}
	session, err := app.workoutService.LatestSession(r.Context(), userID, workoutID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, session, "")
}

func (app *application) planSessionsGET(w http.ResponseWriter, r *http.Request) {
	userID, _ := contexthelpers.AuthenticatedUserID(r.Context())
	planID, ok := app.parseUUIDParam(w, r, "planID")
	if !ok {
		return
	}
	sessions, err := app.workoutService.SessionsByPlan(r.Context(), userID, planID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, sessions, "")
}
