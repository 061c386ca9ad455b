package main

import (
	"net/http"

	"github.com/vlourenco/treinoapp/internal/contexthelpers"
	"github.com/vlourenco/treinoapp/internal/workout"
)

func (app *application) planCreatePOST(w http.ResponseWriter, r *http.Request) {
	userID, _ := contexthelpers.AuthenticatedUserID(r.Context())
	var params struct {
		Name string `json:"name"`
	}
	if !app.readJSON(w, r, &params) {
		return
	}
	plan, err := app.workoutService.CreatePlan(r.Context(), userID, params.Name)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, plan, "Plano criado com sucesso")
}

func (app *application) plansGET(w http.ResponseWriter, r *http.Request) {
	userID, _ := contexthelpers.AuthenticatedUserID(r.Context())
	plans, err := app.workoutService.AccessiblePlans(r.Context(), userID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, plans, "")
}

func (app *application) planDELETE(w http.ResponseWriter, r *http.Request) {
	userID, _ := contexthelpers.AuthenticatedUserID(r.Context())
	planID, ok := app.parseUUIDParam(w, r, "planID")
	if !ok {
		return
	}
	if err := app.workoutService.DeletePlan(r.Context(), userID, planID); err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, nil, "Plano removido com sucesso")
}

func (app *application) planSendPOST(w http.ResponseWriter, r *http.Request) {
	trainerID, _ := contexthelpers.AuthenticatedUserID(r.Context())
	planID, ok := app.parseUUIDParam(w, r, "planID")
	if !ok {
		return
	}
	var params workout.SendPlanParams
	if !app.readJSON(w, r, &params) {
		return
	}
	params.PlanID = planID
	assignment, err := app.workoutService.SendPlan(r.Context(), trainerID, params)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, assignment, "Plano enviado com sucesso")
}
