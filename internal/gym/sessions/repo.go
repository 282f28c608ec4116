package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/catalog"
	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

const sessionColumns = `id, user_id, date, notes, status, ended_at, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanSession(row pgx.Row) (*Session, error) {
	var s Session
	if err := row.Scan(&s.ID, &s.UserID, &s.Date, &s.Notes, &s.Status, &s.EndedAt, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSet(row pgx.CollectableRow) (SetEntry, error) {
	var set SetEntry
	err := row.Scan(&set.ID, &set.WorkoutExerciseID, &set.Reps, &set.Weight, &set.Note, &set.CreatedAt)
	return set, err
}

func (r *Repo) Create(ctx context.Context, s Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	created, err := scanSession(r.db.QueryRow(ctx, `
		INSERT INTO workout_session (id, user_id, date, notes, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+sessionColumns+`;
	`,
		s.ID, s.UserID, s.Date, s.Notes, StatusStarted,
	))
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, pkg.ErrUnauthorized
		}
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return created, nil
}

// lockSession reads the session row FOR UPDATE, serializing writers of the same session.
func lockSession(ctx context.Context, tx pgx.Tx, sessionID string) (*Session, error) {
	s, err := scanSession(tx.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM workout_session
		WHERE id = $1
		FOR UPDATE;
	`, sessionID))
	if err != nil {
		if pkg.IsNoRows(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("lock session: %w", err)
	}
	return s, nil
}

// attachExercise inserts the (session, exercise) pair unless the unique index already holds it,
// then returns whichever row is stored.
func attachExercise(ctx context.Context, tx pgx.Tx, sessionID, exerciseID string) (*WorkoutExercise, bool, error) {
	var we WorkoutExercise
	err := tx.QueryRow(ctx, `
		INSERT INTO workout_exercise (id, session_id, exercise_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id, exercise_id) DO NOTHING
		RETURNING id, session_id, exercise_id, created_at;
	`,
		uuid.NewString(), sessionID, exerciseID,
	).Scan(&we.ID, &we.SessionID, &we.ExerciseID, &we.CreatedAt)
	if err == nil {
		return &we, true, nil
	}
	if pkg.IsForeignKeyViolationError(err) {
		return nil, false, ErrExerciseNotFound
	}
	if !pkg.IsNoRows(err) {
		return nil, false, fmt.Errorf("insert workout exercise: %w", err)
	}

	err = tx.QueryRow(ctx, `
		SELECT id, session_id, exercise_id, created_at
		FROM workout_exercise
		WHERE session_id = $1 AND exercise_id = $2;
	`,
		sessionID, exerciseID,
	).Scan(&we.ID, &we.SessionID, &we.ExerciseID, &we.CreatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("get workout exercise: %w", err)
	}
	return &we, false, nil
}

func (r *Repo) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
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
	return fn(tx)
}

func (r *Repo) AttachExercise(ctx context.Context, userID, sessionID, exerciseID string) (_ *WorkoutExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.attach_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("session_id", sessionID),
		attribute.String("exercise_id", exerciseID),
	)

	var we *WorkoutExercise
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		s, err := lockSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if err := checkWritable(s, userID); err != nil {
			return err
		}
		we, _, err = attachExercise(ctx, tx, sessionID, exerciseID)
		return err
	})
	if err != nil {
		return nil, err
	}

	we.Sets = []SetEntry{}
	return we, nil
}

// LogSet finds or creates the session's workout exercise and appends the set, in one transaction.
func (r *Repo) LogSet(ctx context.Context, userID, sessionID, exerciseID string, set SetEntry) (_ *SetEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.log_set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("session_id", sessionID),
		attribute.String("exercise_id", exerciseID),
	)

	var stored SetEntry
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		s, err := lockSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if err := checkWritable(s, userID); err != nil {
			return err
		}

		we, _, err := attachExercise(ctx, tx, sessionID, exerciseID)
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx, `
			INSERT INTO set_entry (id, workout_exercise_id, reps, weight, note)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, workout_exercise_id, reps, weight, note, created_at;
		`,
			uuid.NewString(), we.ID, set.Reps, set.Weight, set.Note,
		)
		if err != nil {
			return fmt.Errorf("insert set: %w", err)
		}
		stored, err = pgx.CollectExactlyOneRow(rows, scanSet)
		if err != nil {
			return fmt.Errorf("insert set: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

// Finish completes the session and marks the completion day in the user's streak.
// Finishing a completed session changes nothing; finished reports whether this call did it.
func (r *Repo) Finish(ctx context.Context, userID, sessionID string, now time.Time) (_ *Session, finished bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.finish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session_id", sessionID))

	var s *Session
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		s, err = lockSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if err := checkOwner(s, userID); err != nil {
			return err
		}
		if s.Status == StatusCompleted {
			return nil
		}

		endedAt := completionTime(s, now)
		s, err = scanSession(tx.QueryRow(ctx, `
			UPDATE workout_session
			SET status = $2, ended_at = $3
			WHERE id = $1
			RETURNING `+sessionColumns+`;
		`,
			sessionID, StatusCompleted, endedAt,
		))
		if err != nil {
			return fmt.Errorf("complete session: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO daily_streak (user_id, day, completed)
			VALUES ($1, $2::date, true)
			ON CONFLICT (user_id, day) DO UPDATE SET completed = true;
		`,
			userID, endedAt.Format(time.DateOnly),
		)
		if err != nil {
			return fmt.Errorf("mark streak day: %w", err)
		}

		finished = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return s, finished, nil
}

func (r *Repo) Get(ctx context.Context, sessionID string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session_id", sessionID))

	s, err := scanSession(r.db.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM workout_session
		WHERE id = $1;
	`, sessionID))
	if err != nil {
		if pkg.IsNoRows(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("session [query row]: %w", err)
	}

	if err := r.loadExercises(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// FirstInRange returns the user's earliest session dated in [from, to), nil when there is none.
func (r *Repo) FirstInRange(ctx context.Context, userID string, from, to time.Time) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.first_in_range")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s, err := scanSession(r.db.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM workout_session
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY date, created_at
		LIMIT 1;
	`, userID, from, to))
	if err != nil {
		if pkg.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("session in range [query row]: %w", err)
	}

	if err := r.loadExercises(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ListSince returns sessions with any activity at or after since, with exercises and sets,
// oldest first. Activity is the session's creation or completion, an attached exercise or a logged set.
func (r *Repo) ListSince(ctx context.Context, since time.Time) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.list_since")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM workout_session ws
		WHERE GREATEST(
			ws.created_at,
			ws.ended_at,
			(SELECT MAX(we.created_at) FROM workout_exercise we WHERE we.session_id = ws.id),
			(SELECT MAX(se.created_at)
				FROM set_entry se
				JOIN workout_exercise we ON we.id = se.workout_exercise_id
				WHERE we.session_id = ws.id)
		) >= $1
		ORDER BY ws.created_at;
	`, since)
	if err != nil {
		return nil, fmt.Errorf("sessions since [query]: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Session, error) {
		s, err := scanSession(row)
		if err != nil {
			return Session{}, err
		}
		return *s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("sessions since [collect]: %w", err)
	}

	for i := range list {
		if err := r.loadExercises(ctx, &list[i]); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// loadExercises fills the session's exercises, in attach order, with their sets in insertion order.
func (r *Repo) loadExercises(ctx context.Context, s *Session) error {
	rows, err := r.db.Query(ctx, `
		SELECT `+catalog.ExerciseSelect+`,
			we.id, we.session_id, we.exercise_id, we.created_at
		FROM workout_exercise we
		JOIN exercise e ON e.id = we.exercise_id `+catalog.ExerciseJoins+`
		WHERE we.session_id = $1
		ORDER BY we.created_at, we.id;
	`, s.ID)
	if err != nil {
		return fmt.Errorf("workout exercises [query]: %w", err)
	}
	exercises, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (WorkoutExercise, error) {
		var we WorkoutExercise
		exercise, err := catalog.ScanExercise(row, &we.ID, &we.SessionID, &we.ExerciseID, &we.CreatedAt)
		we.Exercise = &exercise
		return we, err
	})
	if err != nil {
		return fmt.Errorf("workout exercises [collect]: %w", err)
	}

	rows, err = r.db.Query(ctx, `
		SELECT se.id, se.workout_exercise_id, se.reps, se.weight, se.note, se.created_at
		FROM set_entry se
		JOIN workout_exercise we ON we.id = se.workout_exercise_id
		WHERE we.session_id = $1
		ORDER BY se.seq;
	`, s.ID)
	if err != nil {
		return fmt.Errorf("sets [query]: %w", err)
	}
	sets, err := pgx.CollectRows(rows, scanSet)
	if err != nil {
		return fmt.Errorf("sets [collect]: %w", err)
	}

	setsByExercise := make(map[string][]SetEntry)
	for _, set := range sets {
		setsByExercise[set.WorkoutExerciseID] = append(setsByExercise[set.WorkoutExerciseID], set)
	}
	for i := range exercises {
		exercises[i].Sets = setsByExercise[exercises[i].ID]
		if exercises[i].Sets == nil {
			exercises[i].Sets = []SetEntry{}
		}
	}

	s.Exercises = exercises
	s.ExerciseCount = len(exercises)
	return nil
}
