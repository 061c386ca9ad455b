package main

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/vlourenco/treinoapp/internal/contexthelpers"
)

func (app *application) workoutCreatePOST(w http.ResponseWriter, r *http.Request) {
	userID, _ := contexthelpers.AuthenticatedUserID(r.Context())
	planID, ok := app.parseUUIDParam(w, r, "planID")
	if !ok {
		return
	}
	var params struct {
		Name        string      `json:"name"`
		ExerciseIDs []uuid.UUID `json:"exerciseIds"`
	}
	if !app.readJSON(w, r, &params) {
		return
	}
	created, err := app.workoutService.CreateWorkout(r.Context(), userID, planID, params.Name, params.ExerciseIDs)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, created, "Treino criado com sucesso")
}

func (app *application) workoutsByPlanGET(w http.ResponseWriter, r *http.Request) {
	planID, ok := app.parseUUIDParam(w, r, "planID")
	if !ok {
		return
	}
	workouts, err := app.workoutService.WorkoutsByPlan(r.Context(), planID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, workouts, "")
}

func (app *application) workoutDELETE(w http.ResponseWriter, r *http.Request) {
	userID, _ := contexthelpers.AuthenticatedUserID(r.Context())
	workoutID, ok := app.parseUUIDParam(w, r, "workoutID")
	if !ok {
		return
	}
	if err := app.workoutService.DeleteWorkout(r.Context(), userID, workoutID); err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, nil, "Treino removido com sucesso")
}

func (app *application) workoutExercisesGET(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := app.parseUUIDParam(w, r, "workoutID")
	if !ok {
		return
	}
	exercises, err := app.workoutService.ExercisesByWorkout(r.Context(), workoutID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, exercises, "")
}
