package sessions

import (
	"math"
	"time"
)

type ExerciseSummary struct {
	ExerciseID string  `json:"exerciseId"`
	Name       string  `json:"name"`
	Sets       int     `json:"sets"`
	Volume     float64 `json:"volume"`
	BestWeight float64 `json:"weight"`
	BestReps   int     `json:"reps"`
}

type Summary struct {
	SessionID       string            `json:"sessionId"`
	Status          Status            `json:"status"`
	DurationMinutes int               `json:"durationMinutes"`
	TotalSets       int               `json:"totalSets"`
	TotalVolume     float64           `json:"totalVolume"`
	PerExerciseBest []ExerciseSummary `json:"perExerciseBest"`
}

// Summarize derives the workout statistics. An unfinished session is measured up to now.
// Sets with zero reps or zero weight add nothing to the volume. The best set of an
// exercise is its heaviest; the earliest one wins a tie.
func Summarize(s *Session, now time.Time) Summary {
	summary := Summary{
		SessionID:       s.ID,
		Status:          s.Status,
		PerExerciseBest: []ExerciseSummary{},
	}

	end := now
	if s.EndedAt != nil {
		end = *s.EndedAt
	}
	if elapsed := end.Sub(s.Date); elapsed > 0 {
		summary.DurationMinutes = int(math.Round(elapsed.Minutes()))
	}

	for _, we := range s.Exercises {
		summary.TotalSets += len(we.Sets)
		if len(we.Sets) == 0 {
			continue
		}

		es := ExerciseSummary{
			ExerciseID: we.ExerciseID,
			Sets:       len(we.Sets),
			BestWeight: we.Sets[0].Weight,
			BestReps:   we.Sets[0].Reps,
		}
		if we.Exercise != nil {
			es.Name = we.Exercise.Name
		}
		for _, set := range we.Sets {
			if set.Reps > 0 && set.Weight > 0 {
				es.Volume += float64(set.Reps) * set.Weight
			}
			if set.Weight > es.BestWeight {
				es.BestWeight = set.Weight
				es.BestReps = set.Reps
			}
		}

		summary.TotalVolume += es.Volume
		summary.PerExerciseBest = append(summary.PerExerciseBest, es)
	}

	return summary
}
