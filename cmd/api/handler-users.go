package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vlourenco/treinoapp/internal/contexthelpers"
	"github.com/vlourenco/treinoapp/internal/users"
)

func (app *application) userGET(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireSelf(w, r)
	if !ok {
		return
	}
	user, err := app.userService.Get(r.Context(), userID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, user, "")
}

func (app *application) userPUT(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireSelf(w, r)
	if !ok {
		return
	}
	var params users.UpdateUserParams
	if !app.readJSON(w, r, &params) {
		return
	}
	user, err := app.userService.Update(r.Context(), userID, params)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, user, "Usuário atualizado com sucesso")
}

func (app *application) relationCreatePOST(w http.ResponseWriter, r *http.Request) {
	trainerID, _ := contexthelpers.AuthenticatedUserID(r.Context())
	var params struct {
		StudentEmail string  `json:"studentEmail"`
		Nickname     *string `json:"nickname"`
	}
	if !app.readJSON(w, r, &params) {
		return
	}
	relation, err := app.userService.CreateRelation(r.Context(), trainerID, params.StudentEmail, params.Nickname)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, relation, "Aluno vinculado com sucesso")
}

func (app *application) relationDELETE(w http.ResponseWriter, r *http.Request) {
	trainerID, _ := contexthelpers.AuthenticatedUserID(r.Context())
	var params struct {
		StudentEmail string `json:"studentEmail"`
	}
	if !app.readJSON(w, r, &params) {
		return
	}
	if err := app.userService.DeleteRelation(r.Context(), trainerID, params.StudentEmail); err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, nil, "Aluno desvinculado com sucesso")
}

func (app *application) relationsGET(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := app.parseUUIDParam(w, r, "trainerID")
	if !ok {
		return
	}
	authenticatedID, _ := contexthelpers.AuthenticatedUserID(r.Context())
	if authenticatedID != trainerID {
		app.clientError(w, r, http.StatusForbidden, "forbidden")
		return
	}
	relations, err := app.userService.Relations(r.Context(), trainerID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, relations, "")
}

func (app *application) weightCreatePOST(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireSelf(w, r)
	if !ok {
		return
	}
	var params struct {
		WeightKg   float64    `json:"weightKg"`
		RecordedAt *time.Time `json:"recordedAt"`
	}
	if !app.readJSON(w, r, &params) {
		return
	}
	entry, err := app.userService.AddWeight(r.Context(), userID, params.WeightKg, params.RecordedAt)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, entry, "Peso registrado com sucesso")
}

func (app *application) weightHistoryGET(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireSelf(w, r)
	if !ok {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			app.clientError(w, r, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = parsed
	}
	history, err := app.userService.WeightHistory(r.Context(), userID, limit)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, history, "")
}

func (app *application) weightPUT(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireSelf(w, r)
	if !ok {
		return
	}
	entryID, ok := app.parseUUIDParam(w, r, "entryID")
	if !ok {
		return
	}
	var params users.UpdateWeightParams
	if !app.readJSON(w, r, &params) {
		return
	}
	entry, err := app.userService.UpdateWeight(r.Context(), userID, entryID, params)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, entry, "Peso atualizado com sucesso")
}

func (app *application) weightDELETE(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireSelf(w, r)
	if !ok {
		return
	}
	entryID, ok := app.parseUUIDParam(w, r, "entryID")
	if !ok {
		return
	}
	if err := app.userService.DeleteWeight(r.Context(), userID, entryID); err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, nil, "Peso removido com sucesso")
}

func (app *application) workoutDaysPUT(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireSelf(w, r)
	if !ok {
		return
	}
	var params struct {
		Weekdays []int `json:"weekdays"`
	}
	if !app.readJSON(w, r, &params) {
		return
	}
	stored, err := app.userService.SetWorkoutDays(r.Context(), userID, params.Weekdays)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, stored, "Dias de treino atualizados")
}

func (app *application) workoutDaysGET(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireSelf(w, r)
	if !ok {
		return
	}
	days, err := app.userService.WorkoutDays(r.Context(), userID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, days, "")
}
