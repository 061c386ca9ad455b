package main

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/vlourenco/treinoapp/internal/e2etest"
	"github.com/vlourenco/treinoapp/internal/progress"
	"github.com/vlourenco/treinoapp/internal/testhelpers"
	"github.com/vlourenco/treinoapp/internal/users"
)

func Test_application_progress(t *testing.T) {
	ctx := t.Context()

	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	client := server.Client()
	user := register(ctx, t, client, "elisa@example.com", "Elisa", users.TypeNormal)

	// Schedule only today's weekday so the streak math is deterministic.
	today := int(time.Now().UTC().Weekday())
	if resp, putErr := client.PutJSON(ctx,
		fmt.Sprintf("/api/users/%s/workout-days", user.ID), map[string]any{
			"weekdays": []int{today},
		}); putErr != nil {
		t.Fatalf("Failed to set workout days: %v", putErr)
	} else {
		_ = resp.Body.Close()
	}

	// One finished session today.
	var sessionID string
	{
		resp, postErr := client.PostJSON(ctx, "/api/sessions/start", map[string]any{})
		if postErr != nil {
			t.Fatalf("Failed to start session: %v", postErr)
		}
		var body struct {
			Data struct {
				ID string `json:"id"`
			} `json:"data"`
		}
		if err = e2etest.DecodeJSON(resp, &body); err != nil {
			t.Fatalf("Failed to decode session: %v", err)
		}
		sessionID = body.Data.ID
	}
	if resp, postErr := client.PostJSON(ctx,
		fmt.Sprintf("/api/sessions/%s/finish", sessionID), nil); postErr != nil {
		t.Fatalf("Failed to finish session: %v", postErr)
	} else {
		_ = resp.Body.Close()
	}

	t.Run("workout streak", func(t *testing.T) {
		resp, getErr := client.Get(ctx,
			fmt.Sprintf("/api/users/%s/workout-streak?timezone=UTC", user.ID))
		if getErr != nil {
			t.Fatalf("Failed to get streak: %v", getErr)
		}
		var body struct {
			Data progress.StreakResult `json:"data"`
		}
		if err = e2etest.DecodeJSON(resp, &body); err != nil {
			t.Fatalf("Failed to decode streak: %v", err)
		}
		if body.Data.CurrentStreak != 1 {
			t.Errorf("Expected current streak 1, got %d", body.Data.CurrentStreak)
		}
		if !body.Data.IsActiveToday {
			t.Error("Expected the streak to be active today")
		}
		if body.Data.TotalWorkoutDays != 1 {
			t.Errorf("Expected 1 total workout day, got %d", body.Data.TotalWorkoutDays)
		}
		if len(body.Data.ScheduledDays) != 1 || body.Data.ScheduledDays[0] != today {
			t.Errorf("Expected scheduled days [%d], got %v", today, body.Data.ScheduledDays)
		}
	})

	t.Run("main page summary", func(t *testing.T) {
		resp, getErr := client.Get(ctx,
			fmt.Sprintf("/api/users/%s/main?timezone=UTC", user.ID))
		if getErr != nil {
			t.Fatalf("Failed to get main page: %v", getErr)
		}
		var body struct {
			Data progress.MainPageSummary `json:"data"`
		}
		if err = e2etest.DecodeJSON(resp, &body); err != nil {
			t.Fatalf("Failed to decode main page: %v", err)
		}
		if body.Data.MonthSessions != 1 {
			t.Errorf("Expected 1 month session, got %d", body.Data.MonthSessions)
		}
		if body.Data.CurrentStreak != 1 {
			t.Errorf("Expected current streak 1, got %d", body.Data.CurrentStreak)
		}
	})

	t.Run("progress report", func(t *testing.T) {
		resp, getErr := client.Get(ctx,
			fmt.Sprintf("/api/users/%s/progress?timezone=UTC", user.ID))
		if getErr != nil {
			t.Fatalf("Failed to get progress report: %v", getErr)
		}
		var body struct {
			Data progress.Report `json:"data"`
		}
		if err = e2etest.DecodeJSON(resp, &body); err != nil {
			t.Fatalf("Failed to decode progress report: %v", err)
		}
		if body.Data.MonthSessions != 1 {
			t.Errorf("Expected 1 month session, got %d", body.Data.MonthSessions)
		}
	})

	t.Run("unknown timezone is rejected", func(t *testing.T) {
		resp, getErr := client.Get(ctx,
			fmt.Sprintf("/api/users/%s/workout-streak?timezone=Mars%%2FOlympus", user.ID))
		if getErr != nil {
			t.Fatalf("Failed to get streak: %v", getErr)
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", resp.StatusCode)
		}
	})

	t.Run("streaks of other users are forbidden", func(t *testing.T) {
		other := mustNewClient(t, server.URL())
		register(ctx, t, other, "fabio@example.com", "Fabio", users.TypeNormal)

		resp, getErr := other.Get(ctx,
			fmt.Sprintf("/api/users/%s/workout-streak", user.ID))
		if getErr != nil {
			t.Fatalf("Failed to get streak: %v", getErr)
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("Expected status 403, got %d", resp.StatusCode)
		}
	})
}
