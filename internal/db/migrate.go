package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is idempotent; Migrate can run on every startup.
const Schema = `
CREATE TABLE IF NOT EXISTS muscle (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS exercise (
	id                  TEXT PRIMARY KEY,
	name                TEXT NOT NULL,
	description         TEXT NOT NULL DEFAULT '',
	equipment           TEXT NOT NULL DEFAULT '',
	primary_muscle_id   TEXT NOT NULL REFERENCES muscle(id),
	secondary_muscle_id TEXT REFERENCES muscle(id),
	video_key           TEXT,
	difficulty          TEXT,
	mechanics           TEXT,
	force               TEXT,
	tips                TEXT,
	mistakes            TEXT
);

CREATE TABLE IF NOT EXISTS program (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	level       TEXT,
	goal        TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS program_day (
	id          TEXT PRIMARY KEY,
	program_id  TEXT NOT NULL REFERENCES program(id) ON DELETE CASCADE,
	day_of_week INT NOT NULL CHECK (day_of_week BETWEEN 1 AND 7),
	title       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS program_exercise (
	id             TEXT PRIMARY KEY,
	program_day_id TEXT NOT NULL REFERENCES program_day(id) ON DELETE CASCADE,
	exercise_id    TEXT NOT NULL REFERENCES exercise(id),
	target_sets    INT NOT NULL DEFAULT 3,
	target_reps    TEXT
);

CREATE TABLE IF NOT EXISTS users (
	id                TEXT PRIMARY KEY,
	email             TEXT NOT NULL UNIQUE,
	name              TEXT NOT NULL DEFAULT '',
	password_hash     TEXT NOT NULL,
	gender            TEXT,
	active_program_id TEXT REFERENCES program(id) ON DELETE SET NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS user_profile (
	user_id        TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	goal           TEXT NOT NULL,
	level          TEXT NOT NULL,
	activity_level TEXT NOT NULL DEFAULT '',
	age            INT,
	height_cm      DOUBLE PRECISION,
	weight_kg      DOUBLE PRECISION,
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS user_equipment (
	user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name    TEXT NOT NULL,
	PRIMARY KEY (user_id, name)
);

CREATE TABLE IF NOT EXISTS workout_session (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	date       TIMESTAMPTZ NOT NULL,
	notes      TEXT,
	status     TEXT NOT NULL DEFAULT 'STARTED' CHECK (status IN ('STARTED', 'COMPLETED')),
	ended_at   TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_workout_session_user_date ON workout_session(user_id, date);

CREATE TABLE IF NOT EXISTS workout_exercise (
	id          TEXT PRIMARY KEY,
	session_id  TEXT NOT NULL REFERENCES workout_session(id) ON DELETE CASCADE,
	exercise_id TEXT NOT NULL REFERENCES exercise(id),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS uq_workout_exercise_session_exercise
	ON workout_exercise(session_id, exercise_id);

CREATE TABLE IF NOT EXISTS set_entry (
	id                  TEXT PRIMARY KEY,
	seq                 BIGINT GENERATED ALWAYS AS IDENTITY,
	workout_exercise_id TEXT NOT NULL REFERENCES workout_exercise(id) ON DELETE CASCADE,
	reps                INT NOT NULL CHECK (reps >= 0),
	weight              DOUBLE PRECISION NOT NULL CHECK (weight >= 0),
	note                TEXT,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_set_entry_workout_exercise ON set_entry(workout_exercise_id, seq);

CREATE TABLE IF NOT EXISTS meal (
	id       TEXT PRIMARY KEY,
	user_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	type     TEXT NOT NULL CHECK (type IN ('BREAKFAST', 'LUNCH', 'DINNER', 'SNACK')),
	calories INT NOT NULL CHECK (calories >= 0),
	protein  INT NOT NULL DEFAULT 0,
	date     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_meal_user_date ON meal(user_id, date);

CREATE TABLE IF NOT EXISTS weight_entry (
	id        TEXT PRIMARY KEY,
	user_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	weight_kg DOUBLE PRECISION NOT NULL,
	date      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_weight_entry_user_date ON weight_entry(user_id, date);

CREATE TABLE IF NOT EXISTS daily_streak (
	user_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	day       DATE NOT NULL,
	completed BOOLEAN NOT NULL DEFAULT false,
	UNIQUE (user_id, day)
);

CREATE TABLE IF NOT EXISTS activity_event (
	id        BIGSERIAL PRIMARY KEY,
	user_id   TEXT NOT NULL,
	type      TEXT NOT NULL,
	data      JSONB NOT NULL DEFAULT '{}'::jsonb,
	timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_activity_event_user_ts ON activity_event(user_id, timestamp DESC);
ALTER TABLE activity_event ADD COLUMN IF NOT EXISTS published_at TIMESTAMPTZ;
CREATE INDEX IF NOT EXISTS idx_activity_event_unpublished ON activity_event(id) WHERE published_at IS NULL;
`

// Migrate ensures all tables and indexes exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
