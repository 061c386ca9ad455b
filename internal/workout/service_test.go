package workout_test

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/vlourenco/treinoapp/internal/errors"
	"github.com/vlourenco/treinoapp/internal/sqlite"
	"github.com/vlourenco/treinoapp/internal/testhelpers"
	"github.com/vlourenco/treinoapp/internal/users"
	"github.com/vlourenco/treinoapp/internal/workout"
)

type testEnv struct {
	users    *users.Service
	workouts *workout.Service
}

func newTestEnv(t *testing.T) (testEnv, context.Context) {
	t.Helper()
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	userSvc := users.NewService(db, logger)
	return testEnv{
		users:    userSvc,
		workouts: workout.NewService(db, logger, userSvc, ""),
	}, ctx
}

func (env testEnv) createUser(t *testing.T, ctx context.Context, email string, userType users.UserType) users.User {
	t.Helper()
	user, err := env.users.Create(ctx, users.CreateUserParams{
		Email:    email,
		Password: "s3cret-pass",
		Type:     userType,
		Name:     "Test User",
	})
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", email, err)
	}
	return user
}

func (env testEnv) createExercise(t *testing.T, ctx context.Context, name string) workout.Exercise {
	t.Helper()
	exercise, err := env.workouts.GenerateExercise(ctx, name)
	if err != nil {
		t.Fatalf("Failed to create exercise %s: %v", name, err)
	}
	return exercise
}

func TestCreatePlanNameDedup(t *testing.T) {
	env, ctx := newTestEnv(t)
	author := env.createUser(t, ctx, "ana@example.com", users.TypeNormal)

	wantNames := []string{"Treino", "Treino (2)", "Treino (3)"}
	for _, want := range wantNames {
		plan, err := env.workouts.CreatePlan(ctx, author.ID, "Treino")
		if err != nil {
			t.Fatalf("CreatePlan() error = %v", err)
		}
		if plan.Name != want {
			t.Errorf("CreatePlan() name = %q, want %q", plan.Name, want)
		}
	}

	t.Run("other authors are unaffected", func(t *testing.T) {
		other := env.createUser(t, ctx, "other@example.com", users.TypeNormal)
		plan, err := env.workouts.CreatePlan(ctx, other.ID, "Treino")
		if err != nil {
			t.Fatalf("CreatePlan() error = %v", err)
		}
		if plan.Name != "Treino" {
			t.Errorf("CreatePlan() name = %q, want Treino", plan.Name)
		}
	})
}

func TestDeletePlan(t *testing.T) {
	env, ctx := newTestEnv(t)
	author := env.createUser(t, ctx, "ana@example.com", users.TypeNormal)
	intruder := env.createUser(t, ctx, "intruder@example.com", users.TypeNormal)

	plan, err := env.workouts.CreatePlan(ctx, author.ID, "Treino")
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}

	if err = env.workouts.DeletePlan(ctx, intruder.ID, plan.ID); !errors.Is(err, workout.ErrForbidden) {
		t.Errorf("DeletePlan() by non-author error = %v, want ErrForbidden", err)
	}
	if err = env.workouts.DeletePlan(ctx, author.ID, plan.ID); err != nil {
		t.Errorf("DeletePlan() error = %v", err)
	}
	if err = env.workouts.DeletePlan(ctx, author.ID, plan.ID); !errors.Is(err, workout.ErrNotFound) {
		t.Errorf("DeletePlan() twice error = %v, want ErrNotFound", err)
	}
}

func TestSendPlan(t *testing.T) {
	env, ctx := newTestEnv(t)
	trainer := env.createUser(t, ctx, "coach@example.com", users.TypeTrainer)
	student := env.createUser(t, ctx, "student@example.com", users.TypeNormal)
	if _, err := env.users.CreateRelation(ctx, trainer.ID, student.Email, nil); err != nil {
		t.Fatalf("CreateRelation() error = %v", err)
	}

	plan, err := env.workouts.CreatePlan(ctx, trainer.ID, "Hipertrofia")
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}

	t.Run("happy path by email", func(t *testing.T) {
		assignment, sendErr := env.workouts.SendPlan(ctx, trainer.ID, workout.SendPlanParams{
			PlanID:       plan.ID,
			StudentEmail: student.Email,
			MakeActive:   true,
		})
		if sendErr != nil {
			t.Fatalf("SendPlan() error = %v", sendErr)
		}
		if assignment.StudentID != student.ID {
			t.Errorf("StudentID = %s, want %s", assignment.StudentID, student.ID)
		}
		if !assignment.Active {
			t.Error("Active = false, want true")
		}
	})

	t.Run("re-send upserts instead of failing", func(t *testing.T) {
		if _, sendErr := env.workouts.SendPlan(ctx, trainer.ID, workout.SendPlanParams{
			PlanID:    plan.ID,
			StudentID: &student.ID,
		}); sendErr != nil {
			t.Errorf("SendPlan() twice error = %v", sendErr)
		}
	})

	t.Run("student sees the received plan", func(t *testing.T) {
		plans, listErr := env.workouts.AccessiblePlans(ctx, student.ID)
		if listErr != nil {
			t.Fatalf("AccessiblePlans() error = %v", listErr)
		}
		if len(plans) != 1 {
			t.Fatalf("AccessiblePlans() returned %d plans, want 1", len(plans))
		}
		received := plans[0]
		if received.Origin != workout.OriginReceived {
			t.Errorf("Origin = %s, want received", received.Origin)
		}
		if received.Trainer == nil || received.Trainer.Email != trainer.Email {
			t.Errorf("Trainer = %+v, want email %s", received.Trainer, trainer.Email)
		}
	})

	t.Run("normal user cannot send", func(t *testing.T) {
		if _, sendErr := env.workouts.SendPlan(ctx, student.ID, workout.SendPlanParams{
			PlanID:       plan.ID,
			StudentEmail: trainer.Email,
		}); !errors.Is(sendErr, workout.ErrNotTrainer) {
			t.Errorf("SendPlan() error = %v, want ErrNotTrainer", sendErr)
		}
	})

	t.Run("trainer cannot receive plans", func(t *testing.T) {
		otherTrainer := env.createUser(t, ctx, "coach2@example.com", users.TypeTrainer)
		if _, relErr := env.users.CreateRelation(ctx, trainer.ID, otherTrainer.Email, nil); relErr != nil {
			t.Fatalf("CreateRelation() error = %v", relErr)
		}
		if _, sendErr := env.workouts.SendPlan(ctx, trainer.ID, workout.SendPlanParams{
			PlanID:       plan.ID,
			StudentEmail: otherTrainer.Email,
		}); !errors.Is(sendErr, workout.ErrStudentInvalid) {
			t.Errorf("SendPlan() error = %v, want ErrStudentInvalid", sendErr)
		}
	})

	t.Run("plan must belong to sender", func(t *testing.T) {
		otherTrainer := env.createUser(t, ctx, "coach3@example.com", users.TypeTrainer)
		if _, relErr := env.users.CreateRelation(ctx, otherTrainer.ID, student.Email, nil); relErr != nil {
			t.Fatalf("CreateRelation() error = %v", relErr)
		}
		if _, sendErr := env.workouts.SendPlan(ctx, otherTrainer.ID, workout.SendPlanParams{
			PlanID:       plan.ID,
			StudentEmail: student.Email,
		}); !errors.Is(sendErr, workout.ErrForbidden) {
			t.Errorf("SendPlan() error = %v, want ErrForbidden", sendErr)
		}
	})

	t.Run("student must be linked", func(t *testing.T) {
		stranger := env.createUser(t, ctx, "stranger@example.com", users.TypeNormal)
		if _, sendErr := env.workouts.SendPlan(ctx, trainer.ID, workout.SendPlanParams{
			PlanID:       plan.ID,
			StudentEmail: stranger.Email,
		}); !errors.Is(sendErr, workout.ErrStudentNotLinked) {
			t.Errorf("SendPlan() error = %v, want ErrStudentNotLinked", sendErr)
		}
	})
}

func TestCreateWorkoutSkipsDuplicateExercises(t *testing.T) {
	env, ctx := newTestEnv(t)
	author := env.createUser(t, ctx, "ana@example.com", users.TypeNormal)
	plan, err := env.workouts.CreatePlan(ctx, author.ID, "Treino")
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}

	supino := env.createExercise(t, ctx, "Supino reto com barra")
	agachamento := env.createExercise(t, ctx, "Agachamento livre")

	created, err := env.workouts.CreateWorkout(ctx, author.ID, plan.ID, "Treino A",
		[]uuid.UUID{supino.ID, supino.ID, agachamento.ID})
	if err != nil {
		t.Fatalf("CreateWorkout() error = %v", err)
	}

	exercises, err := env.workouts.ExercisesByWorkout(ctx, created.ID)
	if err != nil {
		t.Fatalf("ExercisesByWorkout() error = %v", err)
	}
	if len(exercises) != 2 {
		t.Errorf("ExercisesByWorkout() returned %d exercises, want 2", len(exercises))
	}
}

func TestWorkoutsByPlan(t *testing.T) {
	env, ctx := newTestEnv(t)
	author := env.createUser(t, ctx, "ana@example.com", users.TypeNormal)
	plan, err := env.workouts.CreatePlan(ctx, author.ID, "Treino")
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}

	t.Run("empty plan yields not found", func(t *testing.T) {
		if _, listErr := env.workouts.WorkoutsByPlan(ctx, plan.ID); !errors.Is(listErr, workout.ErrNotFound) {
			t.Errorf("WorkoutsByPlan() error = %v, want ErrNotFound", listErr)
		}
	})

	exercise := env.createExercise(t, ctx, "Remada curvada")
	if _, err = env.workouts.CreateWorkout(ctx, author.ID, plan.ID, "Treino A",
		[]uuid.UUID{exercise.ID}); err != nil {
		t.Fatalf("CreateWorkout() error = %v", err)
	}

	workouts, err := env.workouts.WorkoutsByPlan(ctx, plan.ID)
	if err != nil {
		t.Fatalf("WorkoutsByPlan() error = %v", err)
	}
	if len(workouts) != 1 || workouts[0].Name != "Treino A" {
		t.Errorf("WorkoutsByPlan() = %+v, want one workout named Treino A", workouts)
	}
}

func TestSessionLifecycle(t *testing.T) {
	env, ctx := newTestEnv(t)
	user := env.createUser(t, ctx, "ana@example.com", users.TypeNormal)
	other := env.createUser(t, ctx, "other@example.com", users.TypeNormal)

	plan, err := env.workouts.CreatePlan(ctx, user.ID, "Treino")
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}
	exercise := env.createExercise(t, ctx, "Supino reto com barra")
	created, err := env.workouts.CreateWorkout(ctx, user.ID, plan.ID, "Treino A", []uuid.UUID{exercise.ID})
	if err != nil {
		t.Fatalf("CreateWorkout() error = %v", err)
	}
	exercises, err := env.workouts.ExercisesByWorkout(ctx, created.ID)
	if err != nil {
		t.Fatalf("ExercisesByWorkout() error = %v", err)
	}
	workoutExerciseID := exercises[0].ID

	session, err := env.workouts.StartSession(ctx, user.ID, &created.ID)
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	if session.FinishedAt != nil {
		t.Error("new session already has FinishedAt set")
	}

	t.Run("set log updates prescription", func(t *testing.T) {
		weight := 60.0
		reps := 10
		log, logErr := env.workouts.AddSetLog(ctx, user.ID, session.ID, workout.AddSetParams{
			WorkoutExerciseID: &workoutExerciseID,
			WeightKg:          &weight,
			Reps:              &reps,
		})
		if logErr != nil {
			t.Fatalf("AddSetLog() error = %v", logErr)
		}
		if log.WeightKg == nil || *log.WeightKg != weight {
			t.Errorf("WeightKg = %v, want %v", log.WeightKg, weight)
		}

		info, infoErr := env.workouts.ExerciseInfo(ctx, workoutExerciseID)
		if infoErr != nil {
			t.Fatalf("ExerciseInfo() error = %v", infoErr)
		}
		if info.WeightKg == nil || *info.WeightKg != weight {
			t.Errorf("prescription WeightKg = %v, want %v", info.WeightKg, weight)
		}
		if info.Reps == nil || *info.Reps != reps {
			t.Errorf("prescription Reps = %v, want %v", info.Reps, reps)
		}
		if !strings.Contains(info.DescriptionHTML, "<h1>") {
			t.Errorf("DescriptionHTML = %q, want rendered markdown heading", info.DescriptionHTML)
		}
	})

	t.Run("other users cannot log sets", func(t *testing.T) {
		if _, logErr := env.workouts.AddSetLog(ctx, other.ID, session.ID,
			workout.AddSetParams{}); !errors.Is(logErr, workout.ErrForbidden) {
			t.Errorf("AddSetLog() error = %v, want ErrForbidden", logErr)
		}
	})

	t.Run("finish is idempotent", func(t *testing.T) {
		finished, already, finishErr := env.workouts.FinishSession(ctx, user.ID, session.ID)
		if finishErr != nil {
			t.Fatalf("FinishSession() error = %v", finishErr)
		}
		if already {
			t.Error("first finish reported already finished")
		}
		if finished.FinishedAt == nil {
			t.Error("FinishedAt still nil after finish")
		}

		_, already, finishErr = env.workouts.FinishSession(ctx, user.ID, session.ID)
		if finishErr != nil {
			t.Fatalf("FinishSession() twice error = %v", finishErr)
		}
		if !already {
			t.Error("second finish did not report already finished")
		}
	})

	t.Run("no sets on a finished session", func(t *testing.T) {
		if _, logErr := env.workouts.AddSetLog(ctx, user.ID, session.ID,
			workout.AddSetParams{}); !errors.Is(logErr, workout.ErrSessionFinished) {
			t.Errorf("AddSetLog() error = %v, want ErrSessionFinished", logErr)
		}
	})

	t.Run("latest session skips open ones", func(t *testing.T) {
		if _, startErr := env.workouts.StartSession(ctx, user.ID, &created.ID); startErr != nil {
			t.Fatalf("StartSession() error = %v", startErr)
		}
		latest, latestErr := env.workouts.LatestSession(ctx, user.ID, created.ID)
		if latestErr != nil {
			t.Fatalf("LatestSession() error = %v", latestErr)
		}
		if latest.ID != session.ID {
			t.Errorf("LatestSession() = %s, want finished session %s", latest.ID, session.ID)
		}
	})

	t.Run("listings", func(t *testing.T) {
		sessions, listErr := env.workouts.SessionsByUser(ctx, user.ID)
		if listErr != nil {
			t.Fatalf("SessionsByUser() error = %v", listErr)
		}
		if len(sessions) != 2 {
			t.Fatalf("SessionsByUser() returned %d sessions, want 2", len(sessions))
		}
		if sessions[0].ID != session.ID {
			t.Errorf("finished session should come first, got %s", sessions[0].ID)
		}

		planSessions, planErr := env.workouts.SessionsByPlan(ctx, user.ID, plan.ID)
		if planErr != nil {
			t.Fatalf("SessionsByPlan() error = %v", planErr)
		}
		if len(planSessions) != 2 {
			t.Errorf("SessionsByPlan() returned %d sessions, want 2", len(planSessions))
		}

		logs, logsErr := env.workouts.SetLogsByUser(ctx, user.ID)
		if logsErr != nil {
			t.Fatalf("SetLogsByUser() error = %v", logsErr)
		}
		if len(logs) != 1 || logs[0].SessionID != session.ID {
			t.Errorf("SetLogsByUser() = %+v, want the one set of session %s", logs, session.ID)
		}
		if otherLogs, otherErr := env.workouts.SetLogsByUser(ctx, other.ID); otherErr != nil || len(otherLogs) != 0 {
			t.Errorf("SetLogsByUser() for other user = %v, %v, want empty", otherLogs, otherErr)
		}

		stamps, stampsErr := env.workouts.SessionStamps(ctx, user.ID)
		if stampsErr != nil {
			t.Fatalf("SessionStamps() error = %v", stampsErr)
		}
		var finishedCount int
		for _, stamp := range stamps {
			if stamp.FinishedAt != nil {
				finishedCount++
			}
		}
		if len(stamps) != 2 || finishedCount != 1 {
			t.Errorf("SessionStamps() = %d stamps with %d finished, want 2 and 1", len(stamps), finishedCount)
		}
	})
}

func TestSeedCatalogue(t *testing.T) {
	env, ctx := newTestEnv(t)

	if err := env.workouts.SeedCatalogue(ctx); err != nil {
		t.Fatalf("SeedCatalogue() error = %v", err)
	}
	exercises, err := env.workouts.Exercises(ctx)
	if err != nil {
		t.Fatalf("Exercises() error = %v", err)
	}
	if len(exercises) < 200 {
		t.Errorf("Exercises() returned %d entries, want the full catalogue", len(exercises))
	}

	t.Run("idempotent", func(t *testing.T) {
		if err := env.workouts.SeedCatalogue(ctx); err != nil {
			t.Fatalf("SeedCatalogue() twice error = %v", err)
		}
		again, listErr := env.workouts.Exercises(ctx)
		if listErr != nil {
			t.Fatalf("Exercises() error = %v", listErr)
		}
		if len(again) != len(exercises) {
			t.Errorf("catalogue grew from %d to %d entries on reseed", len(exercises), len(again))
		}
	})

	t.Run("muscle groups are linked", func(t *testing.T) {
		var supino *workout.Exercise
		for i := range exercises {
			if exercises[i].Name == "Supino reto com barra" {
				supino = &exercises[i]
				break
			}
		}
		if supino == nil {
			t.Fatal("Supino reto com barra missing from catalogue")
		}
		if len(supino.PrimaryMuscleGroups) != 1 || supino.PrimaryMuscleGroups[0] != "Peito" {
			t.Errorf("PrimaryMuscleGroups = %v, want [Peito]", supino.PrimaryMuscleGroups)
		}
	})

	t.Run("names shared across muscle groups merge", func(t *testing.T) {
		// Stiff com barra is seeded under both Posterior de Coxa and Glúteos.
		// Both must survive, no matter which upsert goroutine ran last.
		var stiff *workout.Exercise
		for i := range exercises {
			if exercises[i].Name == "Stiff com barra" {
				stiff = &exercises[i]
				break
			}
		}
		if stiff == nil {
			t.Fatal("Stiff com barra missing from catalogue")
		}
		want := []string{"Glúteos", "Posterior de Coxa"}
		if !slices.Equal(stiff.PrimaryMuscleGroups, want) {
			t.Errorf("PrimaryMuscleGroups = %v, want %v", stiff.PrimaryMuscleGroups, want)
		}
	})
}
