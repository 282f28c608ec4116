package programs

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/catalog"
	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanProgram(row pgx.Row) (Program, error) {
	var p Program
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Level, &p.Goal, &p.CreatedAt)
	return p, err
}

func scanDay(row pgx.CollectableRow) (Day, error) {
	var d Day
	err := row.Scan(&d.ID, &d.ProgramID, &d.DayOfWeek, &d.Title)
	return d, err
}

func (r *Repo) ListPrograms(ctx context.Context) (_ []Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, level, goal, created_at
		FROM program
		ORDER BY created_at, name;
	`)
	if err != nil {
		return nil, fmt.Errorf("programs [query]: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Program, error) {
		return scanProgram(row)
	})
	if err != nil {
		return nil, fmt.Errorf("programs [collect]: %w", err)
	}

	rows, err = r.db.Query(ctx, `
		SELECT id, program_id, day_of_week, title
		FROM program_day
		ORDER BY program_id, day_of_week;
	`)
	if err != nil {
		return nil, fmt.Errorf("program days [query]: %w", err)
	}
	days, err := pgx.CollectRows(rows, scanDay)
	if err != nil {
		return nil, fmt.Errorf("program days [collect]: %w", err)
	}

	daysByProgram := make(map[string][]Day)
	for _, d := range days {
		daysByProgram[d.ProgramID] = append(daysByProgram[d.ProgramID], d)
	}
	for i := range list {
		list[i].Days = daysByProgram[list[i].ID]
		if list[i].Days == nil {
			list[i].Days = []Day{}
		}
	}

	return list, nil
}

// GetProgram returns the program with its days, each with exercises and their catalog entries.
func (r *Repo) GetProgram(ctx context.Context, id string) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	program, err := scanProgram(r.db.QueryRow(ctx, `
		SELECT id, name, description, level, goal, created_at
		FROM program
		WHERE id = $1;
	`, id))
	if err != nil {
		if pkg.IsNoRows(err) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("program [query row]: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, program_id, day_of_week, title
		FROM program_day
		WHERE program_id = $1
		ORDER BY day_of_week;
	`, id)
	if err != nil {
		return nil, fmt.Errorf("program days [query]: %w", err)
	}
	program.Days, err = pgx.CollectRows(rows, scanDay)
	if err != nil {
		return nil, fmt.Errorf("program days [collect]: %w", err)
	}

	exercisesByDay, err := r.dayExercises(ctx, `pd.program_id = $1`, id)
	if err != nil {
		return nil, err
	}
	for i := range program.Days {
		program.Days[i].Exercises = exercisesByDay[program.Days[i].ID]
	}

	return &program, nil
}

// GetDay returns the program's day for the ISO weekday, nil when the program rests that day.
func (r *Repo) GetDay(ctx context.Context, programID string, dayOfWeek int) (_ *Day, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.get_day")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, program_id, day_of_week, title
		FROM program_day
		WHERE program_id = $1 AND day_of_week = $2
		LIMIT 1;
	`, programID, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("program day [query]: %w", err)
	}
	day, err := pgx.CollectOneRow(rows, scanDay)
	if err != nil {
		if pkg.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("program day [collect]: %w", err)
	}

	exercisesByDay, err := r.dayExercises(ctx, `pd.id = $1`, day.ID)
	if err != nil {
		return nil, err
	}
	day.Exercises = exercisesByDay[day.ID]

	return &day, nil
}

func (r *Repo) dayExercises(ctx context.Context, where string, arg string) (map[string][]ProgramExercise, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+catalog.ExerciseSelect+`,
			pe.id, pe.program_day_id, pe.exercise_id, pe.target_sets, pe.target_reps
		FROM program_exercise pe
		JOIN program_day pd ON pd.id = pe.program_day_id
		JOIN exercise e ON e.id = pe.exercise_id `+catalog.ExerciseJoins+`
		WHERE `+where+`
		ORDER BY pd.day_of_week, pe.id;
	`, arg)
	if err != nil {
		return nil, fmt.Errorf("program exercises [query]: %w", err)
	}

	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ProgramExercise, error) {
		var pe ProgramExercise
		exercise, err := catalog.ScanExercise(row,
			&pe.ID, &pe.ProgramDayID, &pe.ExerciseID, &pe.TargetSets, &pe.TargetReps,
		)
		pe.Exercise = exercise
		return pe, err
	})
	if err != nil {
		return nil, fmt.Errorf("program exercises [collect]: %w", err)
	}

	byDay := make(map[string][]ProgramExercise)
	for _, pe := range list {
		byDay[pe.ProgramDayID] = append(byDay[pe.ProgramDayID], pe)
	}
	return byDay, nil
}

// SetActiveProgram points the user at programID, or clears the reference when programID is nil.
func (r *Repo) SetActiveProgram(ctx context.Context, userID string, programID *string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.set_active")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `UPDATE users SET active_program_id = $2 WHERE id = $1;`, userID, programID)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrProgramNotFound
		}
		return fmt.Errorf("set active program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repo) ActiveProgramID(ctx context.Context, userID string) (_ *string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.active_id")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var programID *string
	err = r.db.QueryRow(ctx, `SELECT active_program_id FROM users WHERE id = $1;`, userID).Scan(&programID)
	if err != nil {
		if pkg.IsNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("active program id: %w", err)
	}
	return programID, nil
}
