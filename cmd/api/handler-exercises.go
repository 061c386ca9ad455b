package main

import (
	"net/http"
)

func (app *application) exercisesGET(w http.ResponseWriter, r *http.Request) {
	exercises, err := app.workoutService.Exercises(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, exercises, "")
}

// exerciseGeneratePOST looks up or generates a catalogue entry by name. The
// generation path calls the language model and can take a while, hence the
// extended timeout on this route group.
func (app *application) exerciseGeneratePOST(w http.ResponseWriter, r *http.Request) {
	var params struct {
		Name string `json:"name"`
	}
	if !app.readJSON(w, r, &params) {
		return
	}
	exercise, err := app.workoutService.GenerateExercise(r.Context(), params.Name)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, exercise, "")
}

func (app *application) exerciseInfoGET(w http.ResponseWriter, r *http.Request) {
	workoutExerciseID, ok := app.parseUUIDParam(w, r, "workoutExerciseID")
	if !ok {
		return
	}
	info, err := app.workoutService.ExerciseInfo(r.Context(), workoutExerciseID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, info, "")
}
