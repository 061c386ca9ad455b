package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/vlourenco/treinoapp/internal/e2etest"
	"github.com/vlourenco/treinoapp/internal/testhelpers"
	"github.com/vlourenco/treinoapp/internal/users"
	"github.com/vlourenco/treinoapp/internal/workout"
)

func Test_application_sessionFlow(t *testing.T) {
	ctx := t.Context()

	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	client := server.Client()
	register(ctx, t, client, "carlos@example.com", "Carlos", users.TypeNormal)

	// Build a plan with one workout. The catalogue is not seeded in tests so
	// the exercise comes from the generate endpoint, which falls back to a
	// minimal entry without an API key.
	var exercise workout.Exercise
	{
		resp, postErr := client.PostJSON(ctx, "/api/exercises/generate", map[string]any{
			"name": "Agachamento livre",
		})
		if postErr != nil {
			t.Fatalf("Failed to generate exercise: %v", postErr)
		}
		var body struct {
			Data workout.Exercise `json:"data"`
		}
		if err = e2etest.DecodeJSON(resp, &body); err != nil {
			t.Fatalf("Failed to decode exercise: %v", err)
		}
		exercise = body.Data
	}

	var plan workout.Plan
	{
		resp, postErr := client.PostJSON(ctx, "/api/plans", map[string]any{"name": "Pernas"})
		if postErr != nil {
			t.Fatalf("Failed to create plan: %v", postErr)
		}
		var body struct {
			Data workout.Plan `json:"data"`
		}
		if err = e2etest.DecodeJSON(resp, &body); err != nil {
			t.Fatalf("Failed to decode plan: %v", err)
		}
		plan = body.Data
	}

	var created workout.Workout
	{
		resp, postErr := client.PostJSON(ctx, fmt.Sprintf("/api/plans/%s/workouts", plan.ID), map[string]any{
			"name":        "Treino A",
			"exerciseIds": []string{exercise.ID.String()},
		})
		if postErr != nil {
			t.Fatalf("Failed to create workout: %v", postErr)
		}
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Expected status 201 creating workout, got %d", resp.StatusCode)
		}
		var body struct {
			Data workout.Workout `json:"data"`
		}
		if err = e2etest.DecodeJSON(resp, &body); err != nil {
			t.Fatalf("Failed to decode workout: %v", err)
		}
		created = body.Data
	}

	var workoutExercise workout.WorkoutExercise
	{
		resp, getErr := client.Get(ctx, fmt.Sprintf("/api/workouts/%s/exercises", created.ID))
		if getErr != nil {
			t.Fatalf("Failed to list workout exercises: %v", getErr)
		}
		var body struct {
			Data []workout.WorkoutExercise `json:"data"`
		}
		if err = e2etest.DecodeJSON(resp, &body); err != nil {
			t.Fatalf("Failed to decode workout exercises: %v", err)
		}
		if len(body.Data) != 1 {
			t.Fatalf("Expected 1 workout exercise, got %d", len(body.Data))
		}
		workoutExercise = body.Data[0]
	}

	var session workout.Session
	t.Run("start session", func(t *testing.T) {
		resp, postErr := client.PostJSON(ctx, "/api/sessions/start", map[string]any{
			"workoutId": created.ID,
		})
		if postErr != nil {
			t.Fatalf("Failed to start session: %v", postErr)
		}
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d", resp.StatusCode)
		}
		var body struct {
			Data workout.Session `json:"data"`
		}
		if err = e2etest.DecodeJSON(resp, &body); err != nil {
			t.Fatalf("Failed to decode session: %v", err)
		}
		session = body.Data
	})

	t.Run("log a set and refresh the prescription", func(t *testing.T) {
		resp, postErr := client.PostJSON(ctx, fmt.Sprintf("/api/sessions/%s/sets", session.ID), map[string]any{
			"workoutExerciseId": workoutExercise.ID,
			"setNumber":         1,
			"reps":              10,
			"weightKg":          60.0,
		})
		if postErr != nil {
			t.Fatalf("Failed to add set: %v", postErr)
		}
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d", resp.StatusCode)
		}
		_ = resp.Body.Close()

		if resp, postErr = client.Get(ctx,
			fmt.Sprintf("/api/workout-exercises/%s/info", workoutExercise.ID)); postErr != nil {
			t.Fatalf("Failed to get exercise info: %v", postErr)
		}
		var body struct {
			Data workout.ExerciseInfo `json:"data"`
		}
		if err = e2etest.DecodeJSON(resp, &body); err != nil {
			t.Fatalf("Failed to decode exercise info: %v", err)
		}
		if body.Data.WeightKg == nil || *body.Data.WeightKg != 60.0 {
			t.Errorf("Expected prescription weight 60, got %v", body.Data.WeightKg)
		}
	})

	t.Run("finish session is idempotent", func(t *testing.T) {
		resp, postErr := client.PostJSON(ctx, fmt.Sprintf("/api/sessions/%s/finish", session.ID), nil)
		if postErr != nil {
			t.Fatalf("Failed to finish session: %v", postErr)
		}
		var body struct {
			Data    workout.Session `json:"data"`
			Message string          `json:"message"`
		}
		if err = e2etest.DecodeJSON(resp, &body); err != nil {
			t.Fatalf("Failed to decode finish response: %v", err)
		}
		if body.Data.FinishedAt == nil {
			t.Error("Expected finished session to carry a finish time")
		}
		if len(body.Data.SetLogs) != 1 {
			t.Errorf("Expected 1 set log, got %d", len(body.Data.SetLogs))
		}

		if resp, postErr = client.PostJSON(ctx,
			fmt.Sprintf("/api/sessions/%s/finish", session.ID), nil); postErr != nil {
			t.Fatalf("Failed to finish session again: %v", postErr)
		}
		if err = e2etest.DecodeJSON(resp, &body); err != nil {
			t.Fatalf("Failed to decode second finish response: %v", err)
		}
		if body.Message != "Sessão já estava finalizada" {
			t.Errorf("Expected already-finished message, got %q", body.Message)
		}
	})

	t.Run("finished session rejects further sets", func(t *testing.T) {
		resp, postErr := client.PostJSON(ctx, fmt.Sprintf("/api/sessions/%s/sets", session.ID), map[string]any{
			"setNumber": 2,
		})
		if postErr != nil {
			t.Fatalf("Failed to post set: %v", postErr)
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", resp.StatusCode)
		}
	})

	t.Run("latest session for workout", func(t *testing.T) {
		resp, getErr := client.Get(ctx, fmt.Sprintf("/api/workouts/%s/sessions/latest", created.ID))
		if getErr != nil {
			t.Fatalf("Failed to get latest session: %v", getErr)
		}
		var body struct {
			Data workout.Session `json:"data"`
		}
		if err = e2etest.DecodeJSON(resp, &body); err != nil {
			t.Fatalf("Failed to decode latest session: %v", err)
		}
		if body.Data.ID != session.ID {
			t.Errorf("Expected latest session %s, got %s", session.ID, body.Data.ID)
		}
	})

	t.Run("sessions by plan", func(t *testing.T) {
		resp, getErr := client.Get(ctx, fmt.Sprintf("/api/plans/%s/sessions", plan.ID))
		if getErr != nil {
			t.Fatalf("Failed to list plan sessions: %v", getErr)
		}
		var body struct {
			Data []workout.Session `json:"data"`
		}
		if err = e2etest.DecodeJSON(resp, &body); err != nil {
			t.Fatalf("Failed to decode plan sessions: %v", err)
		}
		if len(body.Data) != 1 {
			t.Errorf("Expected 1 session, got %d", len(body.Data))
		}
	})

	t.Run("other users cannot touch the session", func(t *testing.T) {
		intruder := mustNewClient(t, server.URL())
		register(ctx, t, intruder, "dani@example.com", "Dani", users.TypeNormal)

		resp, postErr := intruder.PostJSON(ctx, fmt.Sprintf("/api/sessions/%s/finish", session.ID), nil)
		if postErr != nil {
			t.Fatalf("Failed to post finish: %v", postErr)
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("Expected status 403, got %d", resp.StatusCode)
		}
	})
}
