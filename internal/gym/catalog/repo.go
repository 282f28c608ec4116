package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) ListExercises(ctx context.Context, filter ExerciseFilter) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("filter.search", filter.Search),
		attribute.String("filter.muscle", filter.Muscle),
		attribute.String("filter.equipment", filter.Equipment),
	)

	rows, err := r.db.Query(ctx, `
		SELECT `+ExerciseSelect+`
		FROM exercise e `+ExerciseJoins+`
		WHERE ($1::text = '' OR lower(pm.name) = lower($1))
		  AND ($2::text = '' OR e.equipment ILIKE '%' || $2 || '%')
		  AND ($3::text = '' OR e.name ILIKE '%' || $3 || '%')
		ORDER BY e.name
		LIMIT $4;
	`,
		filter.Muscle,
		likeEscaper.Replace(filter.Equipment),
		likeEscaper.Replace(filter.Search),
		MaxExercises,
	)
	if err != nil {
		return nil, fmt.Errorf("exercises [query]: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Exercise, error) {
		return ScanExercise(row)
	})
}

func (r *Repo) GetExercise(ctx context.Context, id string) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	exercise, err := ScanExercise(r.db.QueryRow(ctx, `
		SELECT `+ExerciseSelect+`
		FROM exercise e `+ExerciseJoins+`
		WHERE e.id = $1;
	`, id))
	if err != nil {
		if pkg.IsNoRows(err) {
			return nil, ErrExerciseNotFound
		}
		return nil, fmt.Errorf("exercise [query row]: %w", err)
	}

	return &exercise, nil
}

func (r *Repo) ListMuscles(ctx context.Context) (_ []Muscle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.muscles.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, name FROM muscle ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("muscles [query]: %w", err)
	}

	return pgx.CollectRows(rows, pgx.RowToStructByPos[Muscle])
}
