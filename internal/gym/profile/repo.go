package profile

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

// Save upserts the profile, replaces the equipment set and updates the gender, all or nothing.
func (r *Repo) Save(ctx context.Context, p Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO user_profile (user_id, goal, level, activity_level, age, height_cm, weight_kg, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (user_id) DO UPDATE SET
			goal = EXCLUDED.goal,
			level = EXCLUDED.level,
			activity_level = EXCLUDED.activity_level,
			age = EXCLUDED.age,
			height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg,
			updated_at = EXCLUDED.updated_at;
	`,
		p.UserID, p.Goal, p.Level, p.ActivityLevel, p.Age, p.HeightCm, p.WeightKg,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return pkg.ErrUnauthorized
		}
		return fmt.Errorf("upsert profile: %w", err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM user_equipment WHERE user_id = $1;`, p.UserID); err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}

	if len(p.Equipment) > 0 {
		rows := make([][]any, 0, len(p.Equipment))
		for _, name := range p.Equipment {
			rows = append(rows, []any{p.UserID, name})
		}
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"user_equipment"},
			[]string{"user_id", "name"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("insert equipment: %w", err)
		}
	}

	if p.Gender != nil {
		if _, err = tx.Exec(ctx, `UPDATE users SET gender = $2 WHERE id = $1;`, p.UserID, *p.Gender); err != nil {
			return fmt.Errorf("update gender: %w", err)
		}
	}

	return nil
}

func (r *Repo) Get(ctx context.Context, userID string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p := Profile{UserID: userID}
	err = r.db.QueryRow(ctx, `
		SELECT p.goal, p.level, p.activity_level, p.age, p.height_cm, p.weight_kg, p.updated_at, u.gender
		FROM user_profile p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1;
	`, userID).Scan(
		&p.Goal, &p.Level, &p.ActivityLevel, &p.Age, &p.HeightCm, &p.WeightKg, &p.UpdatedAt, &p.Gender,
	)
	if err != nil {
		if pkg.IsNoRows(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("profile [query row]: %w", err)
	}

	rows, err := r.db.Query(ctx, `SELECT name FROM user_equipment WHERE user_id = $1 ORDER BY name;`, userID)
	if err != nil {
		return nil, fmt.Errorf("equipment [query]: %w", err)
	}
	p.Equipment, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("equipment [collect]: %w", err)
	}
	if p.Equipment == nil {
		p.Equipment = []string{}
	}

	return &p, nil
}
