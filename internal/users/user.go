package users

import (
	"time"

	"github.com/google/uuid"
)

// Onboarding holds the questionnaire answers collected after signup.
type Onboarding struct {
	FitnessGoals       []string `json:"fitnessGoals"`
	WorkoutPreferences string   `json:"workoutPreferences"`
	ExperienceLevel    string   `json:"experienceLevel"`
	Limitations        []string `json:"limitations"`
	OtherLimitations   string   `json:"otherLimitations,omitempty"`
}

type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Onboarding   *Onboarding `json:"onboarding,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}
