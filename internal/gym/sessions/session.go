package sessions

import (
	"strings"
	"time"

	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/catalog"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

var (
	ErrSessionNotFound  = pkg.NewError(pkg.ErrNotFound, "workout session not found")
	ErrExerciseNotFound = pkg.NewError(pkg.ErrNotFound, "exercise not found")
	ErrNotSessionOwner  = pkg.NewError(pkg.ErrForbidden, "workout session belongs to another user")
	ErrSessionCompleted = pkg.NewError(pkg.ErrConflict, "workout session is already completed")
)

type Status string

const (
	StatusStarted   Status = "STARTED"
	StatusCompleted Status = "COMPLETED"
)

type Session struct {
	ID            string            `json:"id"`
	UserID        string            `json:"userId"`
	Date          time.Time         `json:"date"`
	Notes         *string           `json:"notes"`
	Status        Status            `json:"status"`
	EndedAt       *time.Time        `json:"endedAt"`
	CreatedAt     time.Time         `json:"createdAt"`
	Exercises     []WorkoutExercise `json:"exercises,omitempty"`
	ExerciseCount int               `json:"exerciseCount"`
}

type WorkoutExercise struct {
	ID         string            `json:"id"`
	SessionID  string            `json:"workoutSessionId"`
	ExerciseID string            `json:"exerciseId"`
	CreatedAt  time.Time         `json:"createdAt"`
	Exercise   *catalog.Exercise `json:"exercise,omitempty"`
	Sets       []SetEntry        `json:"sets"`
}

type SetEntry struct {
	ID                string    `json:"id"`
	WorkoutExerciseID string    `json:"workoutExerciseId"`
	Reps              int       `json:"reps"`
	Weight            float64   `json:"weight"`
	Note              *string   `json:"note"`
	CreatedAt         time.Time `json:"createdAt"`
}

// checkOwner fails when the session is missing or owned by someone else.
func checkOwner(s *Session, userID string) error {
	if s == nil {
		return ErrSessionNotFound
	}
	if s.UserID != userID {
		return ErrNotSessionOwner
	}
	return nil
}

// checkWritable is checkOwner plus the rule that a completed session takes no more exercises or sets.
func checkWritable(s *Session, userID string) error {
	if err := checkOwner(s, userID); err != nil {
		return err
	}
	if s.Status == StatusCompleted {
		return ErrSessionCompleted
	}
	return nil
}

// completionTime is now, or the session date for a session finished before it was scheduled.
func completionTime(s *Session, now time.Time) time.Time {
	if s.Date.After(now) {
		return s.Date.In(now.Location())
	}
	return now
}

type StartRequest struct {
	Notes *string `json:"notes"`
	Date  *string `json:"date"`
}

type AttachRequest struct {
	ExerciseID string `json:"exerciseId"`
}

type LogSetRequest struct {
	ExerciseID string     `json:"exerciseId"`
	Reps       pkg.Number `json:"reps"`
	Weight     pkg.Number `json:"weight"`
	Note       *string    `json:"note"`
}

// parse validates reps as a non-negative whole number and weight as a non-negative number.
func (r LogSetRequest) parse() (reps int, weight float64, err error) {
	if strings.TrimSpace(r.ExerciseID) == "" {
		return 0, 0, pkg.InvalidInput("exerciseId is required")
	}
	reps, err = r.Reps.Int()
	if err != nil || reps < 0 {
		return 0, 0, pkg.InvalidInput("reps must be a non-negative whole number")
	}
	weight, err = r.Weight.Float()
	if err != nil || weight < 0 {
		return 0, 0, pkg.InvalidInput("weight must be a non-negative number")
	}
	return reps, weight, nil
}

var localDateLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04", time.DateOnly}

// parseDate accepts RFC 3339 timestamps and zone-less values, the latter read in loc.
func parseDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	for _, layout := range localDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, pkg.InvalidInput("date must be an ISO 8601 date or timestamp")
}
