// Package users manages accounts, trainer/student relations, body-weight
// history, and the per-user workout day schedule.
package users

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vlourenco/treinoapp/internal/errors"
	"github.com/vlourenco/treinoapp/internal/progress"
	"github.com/vlourenco/treinoapp/internal/sqlite"
)

var (
	ErrNotFound           = errors.NewSentinel("user not found")
	ErrEmailTaken         = errors.NewSentinel("email already registered")
	ErrInvalidCredentials = errors.NewSentinel("invalid credentials")
	ErrNotTrainer         = errors.NewSentinel("user is not a trainer")
	ErrRelationExists     = errors.NewSentinel("student already linked to trainer")
	ErrInvalidInput       = errors.NewSentinel("invalid input")
)

// Service owns account and profile operations. It also acts as the schedule
// and profile source for the progress service.
type Service struct {
	repo   *repository
	logger *slog.Logger
}

func NewService(db *sqlite.Database, logger *slog.Logger) *Service {
	return &Service{
		repo:   newRepository(db, logger),
		logger: logger,
	}
}

// Create registers a new account. The password is stored as a bcrypt hash.
func (s *Service) Create(ctx context.Context, params CreateUserParams) (User, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" || params.Password == "" || params.Name == "" {
		return User{}, errors.Wrap(ErrInvalidInput, "email, password, and name are required")
	}
	userType := params.Type
	if userType == "" {
		userType = TypeNormal
	}
	if userType != TypeNormal && userType != TypeTrainer {
		return User{}, errors.Wrap(ErrInvalidInput, "unknown user type", slog.String("type", string(userType)))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, errors.Wrap(err, "hash password")
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.New(),
		Email:        email,
		Type:         userType,
		Name:         params.Name,
		Gender:       params.Gender,
		BirthDate:    params.BirthDate,
		Goal:         params.Goal,
		HeightCm:     params.HeightCm,
		WeightKg:     params.WeightKg,
		MedicalNotes: params.MedicalNotes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err = s.repo.insertUser(ctx, user, string(hash)); err != nil {
		return User{}, errors.Wrap(err, "insert user", slog.String("email", email))
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "user created",
		slog.String("user_id", user.ID.String()), slog.String("type", string(user.Type)))
	return user, nil
}

// Authenticate verifies email and password, returning ErrInvalidCredentials
// for both unknown emails and wrong passwords so that the response does not
// leak which one it was.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	stored, err := s.repo.userByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, errors.Wrap(err, "fetch user for authentication")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.passwordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return stored.User, nil
}

// Get fetches a user by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (User, error) {
	stored, err := s.repo.userByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	return stored.User, nil
}

// GetByEmail fetches a user by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	stored, err := s.repo.userByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return User{}, err
	}
	return stored.User, nil
}

// Update applies a partial profile update and returns the updated user.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (User, error) {
	stored, err := s.repo.userByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	user := stored.User
	hash := stored.passwordHash
	if params.Password != nil {
		newHash, hashErr := bcrypt.GenerateFromPassword([]byte(*params.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return User{}, errors.Wrap(hashErr, "hash password")
		}
		hash = string(newHash)
	}
	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.Gender != nil {
		user.Gender = params.Gender
	}
	if params.BirthDate != nil {
		user.BirthDate = params.BirthDate
	}
	if params.Goal != nil {
		user.Goal = params.Goal
	}
	if params.HeightCm != nil {
		user.HeightCm = params.HeightCm
	}
	if params.WeightKg != nil {
		user.WeightKg = params.WeightKg
	}
	if params.MedicalNotes != nil {
		user.MedicalNotes = params.MedicalNotes
	}
	user.UpdatedAt = time.Now().UTC()

	if err = s.repo.updateUser(ctx, user, hash); err != nil {
		return User{}, errors.Wrap(err, "update user", slog.String("user_id", id.String()))
	}
	return user, nil
}

// CreateRelation links a student (by email) to a trainer. Only trainer
// accounts can own relations.
func (s *Service) CreateRelation(
	ctx context.Context, trainerID uuid.UUID, studentEmail string, nickname *string,
) (TrainerRelation, error) {
	trainer, err := s.Get(ctx, trainerID)
	if err != nil {
		return TrainerRelation{}, errors.Wrap(err, "fetch trainer")
	}
	if trainer.Type != TypeTrainer {
		return TrainerRelation{}, ErrNotTrainer
	}

	relation := TrainerRelation{
		TrainerID:    trainerID,
		StudentEmail: strings.ToLower(strings.TrimSpace(studentEmail)),
		Nickname:     nickname,
		CreatedAt:    time.Now().UTC(),
	}
	if relation.StudentEmail == "" {
		return TrainerRelation{}, errors.Wrap(ErrInvalidInput, "student email is required")
	}
	if err = s.repo.insertRelation(ctx, relation); err != nil {
		return TrainerRelation{}, errors.Wrap(err, "insert relation")
	}
	return relation, nil
}

// DeleteRelation removes the trainer/student link.
func (s *Service) DeleteRelation(ctx context.Context, trainerID uuid.UUID, studentEmail string) error {
	return s.repo.deleteRelation(ctx, trainerID, strings.ToLower(strings.TrimSpace(studentEmail)))
}

// Relations lists the students linked to a trainer.
func (s *Service) Relations(ctx context.Context, trainerID uuid.UUID) ([]TrainerRelation, error) {
	return s.repo.relationsByTrainer(ctx, trainerID)
}

// HasRelation reports whether the student email is linked to the trainer.
func (s *Service) HasRelation(ctx context.Context, trainerID uuid.UUID, studentEmail string) (bool, error) {
	return s.repo.relationExists(ctx, trainerID, strings.ToLower(strings.TrimSpace(studentEmail)))
}

// AddWeight records a body-weight measurement. A nil recordedAt means now.
func (s *Service) AddWeight(
	ctx context.Context, userID uuid.UUID, weightKg float64, recordedAt *time.Time,
) (progress.WeightEntry, error) {
	if weightKg <= 0 {
		return progress.WeightEntry{}, errors.Wrap(ErrInvalidInput, "weight must be positive")
	}
	if _, err := s.repo.userByID(ctx, userID); err != nil {
		return progress.WeightEntry{}, err
	}

	at := time.Now().UTC()
	if recordedAt != nil {
		at = recordedAt.UTC()
	}
	entry := progress.WeightEntry{
		ID:         uuid.New(),
		WeightKg:   weightKg,
		RecordedAt: at,
	}
	if err := s.repo.insertWeightEntry(ctx, userID, entry); err != nil {
		return progress.WeightEntry{}, errors.Wrap(err, "insert weight entry")
	}
	return entry, nil
}

// WeightHistory lists the user's weight entries newest first. A limit of zero
// means unlimited. Implements the progress profile source.
func (s *Service) WeightHistory(ctx context.Context, userID uuid.UUID, limit int) ([]progress.WeightEntry, error) {
	return s.repo.weightHistory(ctx, userID, limit)
}

// UpdateWeight applies a partial update to one of the user's weight entries.
// An entry owned by someone else reads as not found.
func (s *Service) UpdateWeight(
	ctx context.Context, userID, id uuid.UUID, params UpdateWeightParams,
) (progress.WeightEntry, error) {
	entry, owner, err := s.repo.weightEntryByID(ctx, id)
	if err != nil {
		return progress.WeightEntry{}, err
	}
	if owner != userID {
		return progress.WeightEntry{}, ErrNotFound
	}
	if params.WeightKg != nil {
		if *params.WeightKg <= 0 {
			return progress.WeightEntry{}, errors.Wrap(ErrInvalidInput, "weight must be positive")
		}
		entry.WeightKg = *params.WeightKg
	}
	if params.RecordedAt != nil {
		entry.RecordedAt = params.RecordedAt.UTC()
	}
	if err = s.repo.updateWeightEntry(ctx, entry); err != nil {
		return progress.WeightEntry{}, errors.Wrap(err, "update weight entry")
	}
	return entry, nil
}

// DeleteWeight removes one of the user's weight entries. An entry owned by
// someone else reads as not found.
func (s *Service) DeleteWeight(ctx context.Context, userID, id uuid.UUID) error {
	_, owner, err := s.repo.weightEntryByID(ctx, id)
	if err != nil {
		return err
	}
	if owner != userID {
		return ErrNotFound
	}
	return s.repo.deleteWeightEntry(ctx, id)
}

// SetWorkoutDays replaces the user's training weekdays. Out-of-range values
// are dropped silently, mirroring the schedule policy.
func (s *Service) SetWorkoutDays(ctx context.Context, userID uuid.UUID, weekdays []int) ([]int, error) {
	if _, err := s.repo.userByID(ctx, userID); err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(weekdays))
	valid := make([]int, 0, len(weekdays))
	for _, weekday := range weekdays {
		if weekday >= 0 && weekday <= 6 && !seen[weekday] {
			seen[weekday] = true
			valid = append(valid, weekday)
		}
	}
	if err := s.repo.replaceWorkoutDays(ctx, userID, valid); err != nil {
		return nil, errors.Wrap(err, "replace workout days")
	}
	return valid, nil
}

// WorkoutDays returns the user's training weekdays in ascending order.
// Implements the progress schedule source.
func (s *Service) WorkoutDays(ctx context.Context, userID uuid.UUID) ([]int, error) {
	return s.repo.workoutDays(ctx, userID)
}

// Goal returns the user's training goal, empty when unset. Implements the
// progress profile source.
func (s *Service) Goal(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.Goal == nil {
		return "", nil
	}
	return *user.Goal, nil
}
