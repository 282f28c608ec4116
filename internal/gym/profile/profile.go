package profile

import (
	"fmt"
	"strings"
	"time"

	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

var (
	ErrProfileNotFound = pkg.NewError(pkg.ErrNotFound, "profile not found")
)

type Goal string

const (
	GoalMuscleGain Goal = "MUSCLE_GAIN"
	GoalFatLoss    Goal = "FAT_LOSS"
	GoalStrength   Goal = "STRENGTH"
	GoalFitness    Goal = "FITNESS"
)

type Level string

const (
	LevelBeginner     Level = "BEGINNER"
	LevelIntermediate Level = "INTERMEDIATE"
	LevelAdvanced     Level = "ADVANCED"
)

func ParseGoal(s string) (Goal, error) {
	g := Goal(strings.ToUpper(strings.TrimSpace(s)))
	switch g {
	case GoalMuscleGain, GoalFatLoss, GoalStrength, GoalFitness:
		return g, nil
	}
	return "", pkg.InvalidInput(fmt.Sprintf("invalid goal [%s]", s))
}

func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return l, nil
	}
	return "", pkg.InvalidInput(fmt.Sprintf("invalid level [%s]", s))
}

type Profile struct {
	UserID        string    `json:"userId"`
	Goal          Goal      `json:"goal"`
	Level         Level     `json:"level"`
	ActivityLevel string    `json:"activityLevel"`
	Age           *int      `json:"age"`
	HeightCm      *float64  `json:"heightCm"`
	WeightKg      *float64  `json:"weightKg"`
	Gender        *string   `json:"gender"`
	Equipment     []string  `json:"equipment"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Draft is the onboarding submission, collected across the onboarding steps and sent once.
type Draft struct {
	Goal          string     `json:"goal"`
	Level         string     `json:"level"`
	Gender        string     `json:"gender"`
	ActivityLevel string     `json:"activityLevel"`
	Age           pkg.Number `json:"age"`
	Height        pkg.Number `json:"height"`
	Weight        pkg.Number `json:"weight"`
	Equipment     []string   `json:"equipment"`
}

// ToProfile validates the draft. Absent body metrics stay nil, malformed ones are rejected.
func (d Draft) ToProfile(userID string) (*Profile, error) {
	goal, err := ParseGoal(d.Goal)
	if err != nil {
		return nil, err
	}
	level, err := ParseLevel(d.Level)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		UserID:        userID,
		Goal:          goal,
		Level:         level,
		ActivityLevel: strings.TrimSpace(d.ActivityLevel),
		Equipment:     normalizeEquipment(d.Equipment),
	}

	if d.Age.IsSet() {
		age, err := d.Age.Int()
		if err != nil || age < 0 {
			return nil, pkg.InvalidInput("age must be a non-negative whole number")
		}
		p.Age = &age
	}
	if d.Height.IsSet() {
		height, err := d.Height.Float()
		if err != nil || height < 0 {
			return nil, pkg.InvalidInput("height must be a non-negative number")
		}
		p.HeightCm = &height
	}
	if d.Weight.IsSet() {
		weight, err := d.Weight.Float()
		if err != nil || weight < 0 {
			return nil, pkg.InvalidInput("weight must be a non-negative number")
		}
		p.WeightKg = &weight
	}
	if gender := strings.TrimSpace(d.Gender); gender != "" {
		p.Gender = &gender
	}

	return p, nil
}

// normalizeEquipment trims names and drops blanks and repeats, keeping first occurrence order.
func normalizeEquipment(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
