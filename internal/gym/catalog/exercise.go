package catalog

import (
	"github.com/jackc/pgx/v5"

	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

var (
	ErrExerciseNotFound = pkg.NewError(pkg.ErrNotFound, "exercise not found")
)

const MaxExercises = 50

type Muscle struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Exercise struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Equipment         string  `json:"equipment"`
	PrimaryMuscleID   string  `json:"primaryMuscleId"`
	PrimaryMuscle     Muscle  `json:"primaryMuscle"`
	SecondaryMuscleID *string `json:"secondaryMuscleId"`
	SecondaryMuscle   *Muscle `json:"secondaryMuscle"`
	VideoKey          string  `json:"-"`
	VideoURL          string  `json:"videoUrl,omitempty"`
	Difficulty        *string `json:"difficulty"`
	Mechanics         *string `json:"mechanics"`
	Force             *string `json:"force"`
	Tips              *string `json:"tips"`
	Mistakes          *string `json:"mistakes"`
}

type ExerciseFilter struct {
	Search    string
	Muscle    string
	Equipment string
}

// ExerciseSelect lists the exercise columns in the order ScanExercise reads them.
// It expects the exercise table aliased as e.
const ExerciseSelect = `
	e.id, e.name, e.description, e.equipment,
	e.primary_muscle_id, pm.name,
	e.secondary_muscle_id, sm.name,
	e.video_key, e.difficulty, e.mechanics, e.force, e.tips, e.mistakes`

const ExerciseJoins = `
	JOIN muscle pm ON pm.id = e.primary_muscle_id
	LEFT JOIN muscle sm ON sm.id = e.secondary_muscle_id`

// ScanExercise reads the ExerciseSelect columns, followed by any extra destinations.
func ScanExercise(row pgx.Row, extra ...any) (Exercise, error) {
	var (
		e                 Exercise
		secondaryMuscleNm *string
		videoKey          *string
	)
	dest := []any{
		&e.ID, &e.Name, &e.Description, &e.Equipment,
		&e.PrimaryMuscleID, &e.PrimaryMuscle.Name,
		&e.SecondaryMuscleID, &secondaryMuscleNm,
		&videoKey, &e.Difficulty, &e.Mechanics, &e.Force, &e.Tips, &e.Mistakes,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return Exercise{}, err
	}

	e.PrimaryMuscle.ID = e.PrimaryMuscleID
	if e.SecondaryMuscleID != nil && secondaryMuscleNm != nil {
		e.SecondaryMuscle = &Muscle{ID: *e.SecondaryMuscleID, Name: *secondaryMuscleNm}
	}
	if videoKey != nil {
		e.VideoKey = *videoKey
	}
	return e, nil
}
