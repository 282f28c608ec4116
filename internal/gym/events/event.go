package events

import (
	"time"
)

// Event is one entry of a user's activity log, such as:
//   - workout started / finished
//   - set logged
//   - meal logged / deleted
//   - weight reported
//   - profile saved, program enrolled / quit
type Event struct {
	ID        int64             `json:"id"`
	UserID    string            `json:"userId"`
	Type      Type              `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Data      map[string]string `json:"data"`
}

func New(userID string, eventType Type, data map[string]string) Event {
	if data == nil {
		data = map[string]string{}
	}
	return Event{
		UserID:    userID,
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

type Type string

const (
	TypeWorkoutStarted  Type = "workout_started"
	TypeWorkoutFinished Type = "workout_finished"
	TypeSetLogged       Type = "set_logged"
	TypeMealLogged      Type = "meal_logged"
	TypeMealDeleted     Type = "meal_deleted"
	TypeWeightReported  Type = "weight_reported"
	TypeProfileSaved    Type = "profile_saved"
	TypeProgramEnrolled Type = "program_enrolled"
	TypeProgramQuit     Type = "program_quit"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeWorkoutStarted,
		TypeWorkoutFinished,
		TypeSetLogged,
		TypeMealLogged,
		TypeMealDeleted,
		TypeWeightReported,
		TypeProfileSaved,
		TypeProgramEnrolled,
		TypeProgramQuit:
		return true
	default:
		return false
	}
}

type Page struct {
	Events []Event `json:"events"`
	Total  int     `json:"total"`
}
