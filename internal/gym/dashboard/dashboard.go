package dashboard

import (
	"fmt"
	"time"

	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/profile"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/programs"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/sessions"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

// WeightHistoryLimit is the number of most recent weight entries shown on the progress view.
const WeightHistoryLimit = 30

type Dashboard struct {
	UserName         string            `json:"userName"`
	Goal             *profile.Goal     `json:"goal"`
	Streak           int               `json:"streak"`
	TodaysWorkout    *sessions.Session `json:"todaysWorkout"`
	ActiveProgram    *programs.Program `json:"activeProgram"`
	TodaysProgramDay *programs.Day     `json:"todaysProgramDay"`
}

type WeightEntry struct {
	ID     string    `json:"id"`
	UserID string    `json:"userId"`
	Weight float64   `json:"weight"`
	Date   time.Time `json:"date"`
}

type Progress struct {
	WeightHistory []WeightEntry `json:"weightHistory"`
	TotalWorkouts int           `json:"totalWorkouts"`
}

type LogWeightRequest struct {
	Weight pkg.Number `json:"weight"`
	Date   *string    `json:"date,omitempty"`
}

// parse returns the weight and the entry date; a missing date means now.
func (r LogWeightRequest) parse(now time.Time) (float64, time.Time, error) {
	weight, err := r.Weight.Float()
	if err != nil || weight <= 0 {
		return 0, time.Time{}, pkg.InvalidInput("weight must be a positive number")
	}

	if r.Date == nil || *r.Date == "" {
		return weight, now, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, *r.Date); err == nil {
		return weight, t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, *r.Date, now.Location())
	if err != nil {
		return 0, time.Time{}, pkg.InvalidInput(fmt.Sprintf("invalid date [%s]", *r.Date))
	}
	return weight, t, nil
}
