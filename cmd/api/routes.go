package main

import (
	"net/http"
)

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	var (
		base = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(app.timeout(next))))
		}
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(app.authenticate(base(next)))))
		}
		mustSession = func(next http.Handler) http.Handler {
			return session(app.mustAuthenticate(next))
		}
	)

	mux.Handle("GET /api/healthy", session(http.HandlerFunc(app.healthy)))

	mux.Handle("POST /api/users", session(http.HandlerFunc(app.userCreatePOST)))
	mux.Handle("POST /api/login", session(http.HandlerFunc(app.loginPOST)))
	mux.Handle("POST /api/logout", session(http.HandlerFunc(app.logoutPOST)))

	mux.Handle("GET /api/users/{userID}", mustSession(http.HandlerFunc(app.userGET)))
	mux.Handle("PUT /api/users/{userID}", mustSession(http.HandlerFunc(app.userPUT)))

	mux.Handle("POST /api/relations", mustSession(http.HandlerFunc(app.relationCreatePOST)))
	mux.Handle("DELETE /api/relations", mustSession(http.HandlerFunc(app.relationDELETE)))
	mux.Handle("GET /api/trainers/{trainerID}/relations", mustSession(http.HandlerFunc(app.relationsGET)))

	mux.Handle("POST /api/users/{userID}/weight-history", mustSession(http.HandlerFunc(app.weightCreatePOST)))
	mux.Handle("GET /api/users/{userID}/weight-history", mustSession(http.HandlerFunc(app.weightHistoryGET)))
	mux.Handle("PUT /api/users/{userID}/weight-history/{entryID}", mustSession(http.HandlerFunc(app.weightPUT)))
	mux.Handle("DELETE /api/users/{userID}/weight-history/{entryID}", mustSession(http.HandlerFunc(app.weightDELETE)))

	mux.Handle("PUT /api/users/{userID}/workout-days", mustSession(http.HandlerFunc(app.workoutDaysPUT)))
	mux.Handle("GET /api/users/{userID}/workout-days", mustSession(http.HandlerFunc(app.workoutDaysGET)))

	mux.Handle("GET /api/users/{userID}/workout-streak", mustSession(http.HandlerFunc(app.workoutStreakGET)))
	mux.Handle("GET /api/users/{userID}/main", mustSession(http.HandlerFunc(app.mainPageGET)))
	mux.Handle("GET /api/users/{userID}/progress", mustSession(http.HandlerFunc(app.progressGET)))

	mux.Handle("POST /api/plans", mustSession(http.HandlerFunc(app.planCreatePOST)))
	mux.Handle("GET /api/plans", mustSession(http.HandlerFunc(app.plansGET)))
	mux.Handle("DELETE /api/plans/{planID}", mustSession(http.HandlerFunc(app.planDELETE)))
	mux.Handle("POST /api/plans/{planID}/send", mustSession(http.HandlerFunc(app.planSendPOST)))

	mux.Handle("POST /api/plans/{planID}/workouts", mustSession(http.HandlerFunc(app.workoutCreatePOST)))
	mux.Handle("GET /api/plans/{planID}/workouts", mustSession(http.HandlerFunc(app.workoutsByPlanGET)))
	mux.Handle("DELETE /api/workouts/{workoutID}", mustSession(http.HandlerFunc(app.workoutDELETE)))
	mux.Handle("GET /api/workouts/{workoutID}/exercises", mustSession(http.HandlerFunc(app.workoutExercisesGET)))

	mux.Handle("GET /api/exercises", mustSession(http.HandlerFunc(app.exercisesGET)))
	mux.Handle("POST /api/exercises/generate", mustSession(http.HandlerFunc(app.exerciseGeneratePOST)))
	mux.Handle("GET /api/workout-exercises/{workoutExerciseID}/info", mustSession(http.HandlerFunc(app.exerciseInfoGET)))

	mux.Handle("POST /api/sessions/start", mustSession(http.HandlerFunc(app.sessionStartPOST)))
	mux.Handle("POST /api/sessions/{sessionID}/sets", mustSession(http.HandlerFunc(app.sessionAddSetPOST)))
	mux.Handle("POST /api/sessions/{sessionID}/finish", mustSession(http.HandlerFunc(app.sessionFinishPOST)))
	mux.Handle("GET /api/sessions", mustSession(http.HandlerFunc(app.sessionsGET)))
	mux.Handle("GET /api/users/{userID}/set-logs", mustSession(http.HandlerFunc(app.setLogsGET)))
	mux.Handle("GET /api/workouts/{workoutID}/sessions/latest", mustSession(http.HandlerFunc(app.latestSessionGET)))
	mux.Handle("GET /api/plans/{planID}/sessions", mustSession(http.HandlerFunc(app.planSessionsGET)))

	return mux
}
