package main

import (
	"net/http"
)

func (app *application) workoutStreakGET(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireSelf(w, r)
	if !ok {
		return
	}
	streak, err := app.progressService.Streak(r.Context(), userID, r.URL.Query().Get("timezone"))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, streak, "")
}

func (app *application) mainPageGET(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireSelf(w, r)
	if !ok {
		return
	}
	summary, err := app.progressService.MainPageSummary(r.Context(), userID, r.URL.Query().Get("timezone"))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, summary, "")
}

func (app *application) progressGET(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireSelf(w, r)
	if !ok {
		return
	}
	report, err := app.progressService.Report(r.Context(), userID, r.URL.Query().Get("timezone"))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, report, "")
}
