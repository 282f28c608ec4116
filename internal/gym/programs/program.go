package programs

import (
	"time"

	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/catalog"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

var (
	ErrProgramNotFound = pkg.NewError(pkg.ErrNotFound, "program not found")
	ErrUserNotFound    = pkg.NewError(pkg.ErrUnauthorized, "user not found")
)

type Program struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Level       *string   `json:"level"`
	Goal        *string   `json:"goal"`
	CreatedAt   time.Time `json:"createdAt"`
	Days        []Day     `json:"days"`
}

// Day is a program day; DayOfWeek follows ISO numbering, Sunday is 7.
type Day struct {
	ID        string            `json:"id"`
	ProgramID string            `json:"programId"`
	DayOfWeek int               `json:"dayOfWeek"`
	Title     string            `json:"title"`
	Exercises []ProgramExercise `json:"exercises,omitempty"`
}

type ProgramExercise struct {
	ID           string           `json:"id"`
	ProgramDayID string           `json:"programDayId"`
	ExerciseID   string           `json:"exerciseId"`
	TargetSets   int              `json:"targetSets"`
	TargetReps   *string          `json:"targetReps"`
	Exercise     catalog.Exercise `json:"exercise"`
}

type EnrollRequest struct {
	ProgramID string `json:"programId"`
}
