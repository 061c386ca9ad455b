package main

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/vlourenco/treinoapp/internal/e2etest"
	"github.com/vlourenco/treinoapp/internal/testhelpers"
	"github.com/vlourenco/treinoapp/internal/users"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "TREINO_SQLITE_URL":
		return ":memory:", true
	case "TREINO_ADDR":
		return "localhost:0", true
	case "TREINO_SEED_CATALOGUE":
		// The full catalogue is not needed in most tests and seeding it on
		// every server start slows the suite down.
		return "false", true
	default:
		return "", false
	}
}

// register creates an account and logs the client in.
func register(
	ctx context.Context, t *testing.T, client *e2etest.Client, email, name string, userType users.UserType,
) users.User {
	t.Helper()

	resp, err := client.PostJSON(ctx, "/api/users", map[string]any{
		"email":    email,
		"password": "correct-horse-battery",
		"name":     name,
		"type":     userType,
	})
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201 registering %s, got %d", email, resp.StatusCode)
	}
	var body struct {
		Data users.User `json:"data"`
	}
	if err = e2etest.DecodeJSON(resp, &body); err != nil {
		t.Fatalf("Failed to decode register response: %v", err)
	}

	if resp, err = client.PostJSON(ctx, "/api/login", map[string]any{
		"email":    email,
		"password": "correct-horse-battery",
	}); err != nil {
		t.Fatalf("Failed to login: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 logging in %s, got %d", email, resp.StatusCode)
	}
	return body.Data
}

func Test_application_auth(t *testing.T) {
	ctx := t.Context()

	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	client := server.Client()

	user := register(ctx, t, client, "ana@example.com", "Ana", users.TypeNormal)

	t.Run("duplicate email is rejected", func(t *testing.T) {
		resp, postErr := client.PostJSON(ctx, "/api/users", map[string]any{
			"email":    "Ana@Example.com",
			"password": "another-password",
			"name":     "Ana Again",
			"type":     "normal",
		})
		if postErr != nil {
			t.Fatalf("Failed to post: %v", postErr)
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("Expected status 409, got %d", resp.StatusCode)
		}
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		resp, postErr := client.PostJSON(ctx, "/api/login", map[string]any{
			"email":    "ana@example.com",
			"password": "wrong",
		})
		if postErr != nil {
			t.Fatalf("Failed to post: %v", postErr)
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", resp.StatusCode)
		}
	})

	t.Run("profile round-trip", func(t *testing.T) {
		resp, getErr := client.Get(ctx, fmt.Sprintf("/api/users/%s", user.ID))
		if getErr != nil {
			t.Fatalf("Failed to get profile: %v", getErr)
		}
		var body struct {
			Data users.User `json:"data"`
		}
		if err = e2etest.DecodeJSON(resp, &body); err != nil {
			t.Fatalf("Failed to decode profile: %v", err)
		}
		if body.Data.Email != "ana@example.com" {
			t.Errorf("Expected email ana@example.com, got %q", body.Data.Email)
		}

		goal := "Hipertrofia"
		if resp, getErr = client.PutJSON(ctx, fmt.Sprintf("/api/users/%s", user.ID), map[string]any{
			"goal": goal,
		}); getErr != nil {
			t.Fatalf("Failed to update profile: %v", getErr)
		}
		if err = e2etest.DecodeJSON(resp, &body); err != nil {
			t.Fatalf("Failed to decode update response: %v", err)
		}
		if body.Data.Goal == nil || *body.Data.Goal != goal {
			t.Errorf("Expected goal %q, got %v", goal, body.Data.Goal)
		}
	})

	t.Run("other users' profiles are forbidden", func(t *testing.T) {
		other := register(ctx, t, mustNewClient(t, server.URL()), "bia@example.com", "Bia", users.TypeNormal)
		resp, getErr := client.Get(ctx, fmt.Sprintf("/api/users/%s", other.ID))
		if getErr != nil {
			t.Fatalf("Failed to get profile: %v", getErr)
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("Expected status 403, got %d", resp.StatusCode)
		}
	})

	t.Run("logout clears the session", func(t *testing.T) {
		resp, postErr := client.PostJSON(ctx, "/api/logout", nil)
		if postErr != nil {
			t.Fatalf("Failed to logout: %v", postErr)
		}
		_ = resp.Body.Close()

		if resp, postErr = client.Get(ctx, fmt.Sprintf("/api/users/%s", user.ID)); postErr != nil {
			t.Fatalf("Failed to get profile: %v", postErr)
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Expected status 401 after logout, got %d", resp.StatusCode)
		}
	})
}

// mustNewClient returns a fresh client with its own cookie jar so that tests
// can act as a second user against the same server.
func mustNewClient(t *testing.T, serverURL string) *e2etest.Client {
	t.Helper()
	client, err := e2etest.NewClient(serverURL)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}
