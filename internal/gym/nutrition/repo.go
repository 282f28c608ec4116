package nutrition

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

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

func scanMeal(row pgx.CollectableRow) (Meal, error) {
	var m Meal
	err := row.Scan(&m.ID, &m.UserID, &m.Type, &m.Calories, &m.Protein, &m.Date)
	return m, err
}

func (r *Repo) Create(ctx context.Context, meal Meal) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(ctx, `
		INSERT INTO meal (id, user_id, type, calories, protein, date)
		VALUES ($1, $2, $3, $4, $5, $6);
	`,
		meal.ID, meal.UserID, meal.Type, meal.Calories, meal.Protein, meal.Date,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return pkg.ErrUnauthorized
		}
		return fmt.Errorf("insert meal: %w", err)
	}
	return nil
}

// ListSince returns the user's meals dated at or after from, oldest first.
func (r *Repo) ListSince(ctx context.Context, userID string, from time.Time) (_ []Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.list_since")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, type, calories, protein, date
		FROM meal
		WHERE user_id = $1 AND date >= $2
		ORDER BY date, id;
	`, userID, from)
	if err != nil {
		return nil, fmt.Errorf("meals [query]: %w", err)
	}
	return pgx.CollectRows(rows, scanMeal)
}

// ListAllSince returns every user's meals dated at or after from, oldest first.
func (r *Repo) ListAllSince(ctx context.Context, from time.Time) (_ []Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.list_all_since")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, type, calories, protein, date
		FROM meal
		WHERE date >= $1
		ORDER BY date, id;
	`, from)
	if err != nil {
		return nil, fmt.Errorf("meals [query]: %w", err)
	}
	return pgx.CollectRows(rows, scanMeal)
}

func (r *Repo) Get(ctx context.Context, id string) (_ *Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, type, calories, protein, date
		FROM meal
		WHERE id = $1;
	`, id)
	if err != nil {
		return nil, fmt.Errorf("meal [query]: %w", err)
	}
	meal, err := pgx.CollectExactlyOneRow(rows, scanMeal)
	if err != nil {
		if pkg.IsNoRows(err) {
			return nil, ErrMealNotFound
		}
		return nil, fmt.Errorf("meal [collect]: %w", err)
	}
	return &meal, nil
}

func (r *Repo) Delete(ctx context.Context, id, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM meal WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMealNotFound
	}
	return nil
}
