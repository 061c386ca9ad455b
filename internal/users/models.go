package users

import (
	"time"

	"github.com/google/uuid"
)

// UserType separates trainers from regular users. Trainers own student
// relations and can share workout plans.
type UserType string

const (
	TypeNormal  UserType = "normal"
	TypeTrainer UserType = "trainer"
)

// User is an account profile. The password hash never leaves the repository.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Type         UserType   `json:"type"`
	Name         string     `json:"name"`
	Gender       *string    `json:"gender"`
	BirthDate    *time.Time `json:"birthDate"`
	Goal         *string    `json:"goal"`
	HeightCm     *float64   `json:"heightCm"`
	WeightKg     *float64   `json:"weightKg"`
	MedicalNotes *string    `json:"medicalNotes"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// TrainerRelation links a trainer to a student by email. The email keeps the
// link working even before the student has an account.
type TrainerRelation struct {
	TrainerID    uuid.UUID `json:"trainerId"`
	StudentEmail string    `json:"studentEmail"`
	Nickname     *string   `json:"nickname"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateUserParams carries the fields accepted on registration.
type CreateUserParams struct {
	Email        string     `json:"email"`
	Password     string     `json:"password"`
	Type         UserType   `json:"type"`
	Name         string     `json:"name"`
	Gender       *string    `json:"gender"`
	BirthDate    *time.Time `json:"birthDate"`
	Goal         *string    `json:"goal"`
	HeightCm     *float64   `json:"heightCm"`
	WeightKg     *float64   `json:"weightKg"`
	MedicalNotes *string    `json:"medicalNotes"`
}

// UpdateUserParams carries a partial profile update. Nil fields are left
// untouched; a non-nil password is re-hashed.
type UpdateUserParams struct {
	Password     *string    `json:"password"`
	Name         *string    `json:"name"`
	Gender       *string    `json:"gender"`
	BirthDate    *time.Time `json:"birthDate"`
	Goal         *string    `json:"goal"`
	HeightCm     *float64   `json:"heightCm"`
	WeightKg     *float64   `json:"weightKg"`
	MedicalNotes *string    `json:"medicalNotes"`
}

// UpdateWeightParams carries a partial weight entry update.
type UpdateWeightParams struct {
	WeightKg   *float64   `json:"weightKg"`
	RecordedAt *time.Time `json:"recordedAt"`
}
