package dashboard

import (
	"context"
	"fmt"

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

func (r *Repo) UserName(ctx context.Context, userID string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dashboard.user_name")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var name string
	if err := r.db.QueryRow(ctx, `SELECT name FROM users WHERE id = $1;`, userID).Scan(&name); err != nil {
		if pkg.IsNoRows(err) {
			return "", pkg.ErrUnauthorized
		}
		return "", fmt.Errorf("user name [query row]: %w", err)
	}
	return name, nil
}

// CompletedDays counts the user's daily streak rows marked completed.
func (r *Repo) CompletedDays(ctx context.Context, userID string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dashboard.completed_days")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM daily_streak WHERE user_id = $1 AND completed;
	`, userID).Scan(&count)
	return count, err
}

func (r *Repo) CountWorkouts(ctx context.Context, userID string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dashboard.count_workouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM workout_session WHERE user_id = $1;`, userID).Scan(&count)
	return count, err
}

func (r *Repo) AddWeight(ctx context.Context, entry WeightEntry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dashboard.add_weight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(ctx, `
		INSERT INTO weight_entry (id, user_id, weight_kg, date)
		VALUES ($1, $2, $3, $4);
	`, entry.ID, entry.UserID, entry.Weight, entry.Date)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return pkg.ErrUnauthorized
		}
		return fmt.Errorf("insert weight entry: %w", err)
	}
	return nil
}

// RecentWeights returns the user's latest limit entries, oldest first.
func (r *Repo) RecentWeights(ctx context.Context, userID string, limit int) (_ []WeightEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dashboard.recent_weights")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, weight_kg, date
		FROM (
			SELECT id, user_id, weight_kg, date
			FROM weight_entry
			WHERE user_id = $1
			ORDER BY date DESC, id DESC
			LIMIT $2
		) recent
		ORDER BY date, id;
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("weights [query]: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[WeightEntry])
}
