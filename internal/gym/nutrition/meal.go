package nutrition

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

var (
	ErrMealNotFound = pkg.NewError(pkg.ErrNotFound, "meal not found")
	ErrNotMealOwner = pkg.NewError(pkg.ErrForbidden, "meal belongs to another user")
)

type MealType string

const (
	MealBreakfast MealType = "BREAKFAST"
	MealLunch     MealType = "LUNCH"
	MealDinner    MealType = "DINNER"
	MealSnack     MealType = "SNACK"
)

func ParseMealType(s string) (MealType, error) {
	mt := MealType(strings.ToUpper(strings.TrimSpace(s)))
	switch mt {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return mt, nil
	}
	return "", pkg.InvalidInput(fmt.Sprintf("invalid meal type [%s]", s))
}

type Meal struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Type     MealType  `json:"type"`
	Calories int       `json:"calories"`
	Protein  int       `json:"protein"`
	Date     time.Time `json:"date"`
}

type LogMealRequest struct {
	Type     string     `json:"type"`
	Calories pkg.Number `json:"calories"`
	Protein  pkg.Number `json:"protein"`
}

// toMeal rejects a missing or non-numeric calorie count; protein falls back to 0.
func (r LogMealRequest) toMeal() (*Meal, error) {
	mealType, err := ParseMealType(r.Type)
	if err != nil {
		return nil, err
	}

	calories, err := r.Calories.Float()
	if err != nil || calories < 0 || calories > math.MaxInt32 {
		return nil, pkg.InvalidInput("calories must be a non-negative number")
	}

	protein := 0
	if p, err := r.Protein.Float(); err == nil && p > 0 && p <= math.MaxInt32 {
		protein = int(math.Round(p))
	}

	return &Meal{
		Type:     mealType,
		Calories: int(math.Round(calories)),
		Protein:  protein,
	}, nil
}
